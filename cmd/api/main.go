package main

import (
	"log"
	"time"

	"app/internal/alert"
	"app/internal/config"
	"app/internal/handler"
	infraAlert "app/internal/infra/alert"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	infraGw "app/internal/infra/gateway"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

// AMQP_URLがあればブローカーへ、無ければ標準ログへ流す
func newAlertSink(cfg config.Config) alert.Sink {
	if cfg.AMQPURL == "" {
		return infraAlert.NewLogSink()
	}

	_, ch, err := infraAlert.SetupConn(cfg.AMQPURL)
	if err != nil {
		log.Printf("alert broker unavailable, falling back to log: %v", err)
		return infraAlert.NewLogSink()
	}
	return infraAlert.NewAMQPSink(ch)
}

func main() {
	//.envは無くてもよい（コンテナでは環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続とマイグレーション（ACTIVE一意の部分インデックス含む）
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//決済ゲートウェイ。キーは設定から注入する
	stripeGw := infraGw.NewStripeGateway(infraGw.StripeConfig{
		SecretKey: cfg.StripeSecretKey,
		Timeout:   time.Duration(cfg.StripeTimeoutSec) * time.Second,
	})

	//運用警報。ブローカー未設定ならログへ
	sink := newAlertSink(cfg)

	//商品キャッシュ（任意）
	var itemCache usecase.ItemCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		itemCache = cache.NewRedisItemCache(client, 30*time.Second)
	}

	//Usecase生成
	itemUC := usecase.NewItemUsecase(itemRepo, itemCache)
	cartUC := usecase.NewCartUsecase(txm)
	checkoutUC := usecase.NewCheckoutUsecase(txm)
	paymentUC := usecase.NewPaymentUsecase(txm, stripeGw, sink, &uuidGenerator{})

	//Handler生成
	itemH := handler.NewItemHandler(itemUC)
	cartH := handler.NewCartHandler(cartUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	paymentH := handler.NewPaymentHandler(paymentUC)

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, cfg, itemH, cartH, checkoutH, paymentH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
