package sqlstore_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/core/datamodel/kv"
	"github.com/frahmantamala/salary-calculator/internal/storage"
	"github.com/frahmantamala/salary-calculator/internal/storage/sqlstore"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSQLStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SQL Store Suite")
}

var quietLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

var _ = Describe("SQL key-value store", func() {
	var (
		ctx   context.Context
		db    *gorm.DB
		store storage.KV
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()

		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(&kv.Entry{})).To(Succeed())

		store = sqlstore.New(db)
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("should report a missing key as not found", func() {
		value, found, err := store.Get(ctx, storage.KeyUsers)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(value).To(BeEmpty())
	})

	It("should insert and then overwrite a key", func() {
		Expect(store.Set(ctx, storage.KeyTheme, `"light"`)).To(Succeed())
		Expect(store.Set(ctx, storage.KeyTheme, `"dark"`)).To(Succeed())

		value, found, err := store.Get(ctx, storage.KeyTheme)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal(`"dark"`))

		var count int64
		Expect(db.Model(&kv.Entry{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})

	It("should remove keys and tolerate removing absent ones", func() {
		Expect(store.Set(ctx, storage.KeyCurrentUser, `{"id":"1"}`)).To(Succeed())
		Expect(store.Remove(ctx, storage.KeyCurrentUser)).To(Succeed())
		Expect(store.Remove(ctx, storage.KeyCurrentUser)).To(Succeed())

		_, found, err := store.Get(ctx, storage.KeyCurrentUser)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("should back the generic record store", func() {
		type item struct {
			ID string `json:"id"`
		}
		Expect(storage.SaveAll(ctx, store, storage.KeyEmployees, []item{{ID: "a"}, {ID: "b"}})).To(Succeed())

		items, err := storage.LoadAll[item](ctx, store, storage.KeyEmployees)
		Expect(err).NotTo(HaveOccurred())
		Expect(items).To(HaveLen(2))
	})

	It("should answer pings", func() {
		Expect(store.Ping(ctx)).To(Succeed())
	})
})

var _ = Describe("Open", func() {
	It("should create and migrate an on-device sqlite file", func() {
		ctx := context.Background()
		path := filepath.Join(GinkgoT().TempDir(), "data", "salary.db")

		db, err := sqlstore.Open(ctx, internal.StorageConfig{
			Driver: internal.StorageDriverSQLite,
			Source: path,
		}, quietLogger)
		Expect(err).NotTo(HaveOccurred())

		store := sqlstore.New(db)
		defer store.Close()

		Expect(db.Migrator().HasTable("kv_entries")).To(BeTrue())
		Expect(db.Migrator().HasTable("schema_migrations")).To(BeTrue())

		Expect(store.Set(ctx, storage.KeyTheme, `"dark"`)).To(Succeed())
		_, err = os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be idempotent across reopen", func() {
		ctx := context.Background()
		cfg := internal.StorageConfig{
			Driver: internal.StorageDriverSQLite,
			Source: filepath.Join(GinkgoT().TempDir(), "salary.db"),
		}

		first, err := sqlstore.Open(ctx, cfg, quietLogger)
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlstore.New(first).Set(ctx, storage.KeyUsers, "[]")).To(Succeed())
		Expect(sqlstore.New(first).Close()).To(Succeed())

		second, err := sqlstore.Open(ctx, cfg, quietLogger)
		Expect(err).NotTo(HaveOccurred())
		store := sqlstore.New(second)
		defer store.Close()

		value, found, err := store.Get(ctx, storage.KeyUsers)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal("[]"))
	})

	It("should reject drivers it cannot serve", func() {
		_, err := sqlstore.Open(context.Background(), internal.StorageConfig{
			Driver: internal.StorageDriverRedis,
			Source: "ignored",
		}, quietLogger)
		Expect(err).To(MatchError(ContainSubstring("unsupported driver")))
	})
})
