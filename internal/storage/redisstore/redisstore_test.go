package redisstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/frahmantamala/salary-calculator/internal/storage"
	"github.com/frahmantamala/salary-calculator/internal/storage/redisstore"
	"github.com/go-redis/redismock/v9"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRedisStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Redis Store Suite")
}

var _ = Describe("Redis key-value store", func() {
	const prefix = "salary:"

	var (
		ctx   context.Context
		mock  redismock.ClientMock
		store storage.KV
	)

	BeforeEach(func() {
		ctx = context.Background()
		client, clientMock := redismock.NewClientMock()
		mock = clientMock
		store = redisstore.New(client, prefix)
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("should read prefixed keys", func() {
		mock.ExpectGet(prefix + storage.KeyTheme).SetVal(`"dark"`)

		value, found, err := store.Get(ctx, storage.KeyTheme)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal(`"dark"`))
	})

	It("should map redis.Nil to not found", func() {
		mock.ExpectGet(prefix + storage.KeyUsers).RedisNil()

		_, found, err := store.Get(ctx, storage.KeyUsers)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("should surface other errors", func() {
		mock.ExpectGet(prefix + storage.KeyUsers).SetErr(errors.New("connection refused"))

		_, _, err := store.Get(ctx, storage.KeyUsers)
		Expect(err).To(MatchError("connection refused"))
	})

	It("should write without expiry", func() {
		mock.ExpectSet(prefix+storage.KeyEmployees, "[]", 0).SetVal("OK")

		Expect(storage.SaveAll[string](ctx, store, storage.KeyEmployees, nil)).To(Succeed())
	})

	It("should delete keys", func() {
		mock.ExpectDel(prefix + storage.KeyCurrentUser).SetVal(1)

		Expect(store.Remove(ctx, storage.KeyCurrentUser)).To(Succeed())
	})

	It("should ping the server", func() {
		mock.ExpectPing().SetVal("PONG")

		Expect(store.Ping(ctx)).To(Succeed())
	})
})
