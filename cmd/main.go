package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	// Infraestrutura e utilitários
	"gocorretora/config"
	"gocorretora/internal/pkg/database"
	"gocorretora/internal/pkg/logger"
	"gocorretora/internal/pkg/middleware"
	"gocorretora/internal/pkg/password"
	"gocorretora/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"gocorretora/internal/api/auth"
	"gocorretora/internal/api/resource"
	"gocorretora/internal/api/router"
	"gocorretora/internal/domain"
	"gocorretora/internal/repository/addressrepo"
	"gocorretora/internal/repository/personrepo"
	"gocorretora/internal/repository/phonerepo"
	"gocorretora/internal/repository/propertyrepo"
	"gocorretora/internal/repository/tagrepo"
	"gocorretora/internal/repository/transactionrepo"
	"gocorretora/internal/service/addressservice"
	"gocorretora/internal/service/authservice"
	"gocorretora/internal/service/personservice"
	"gocorretora/internal/service/phoneservice"
	"gocorretora/internal/service/propertyservice"
	"gocorretora/internal/service/tagservice"
	"gocorretora/internal/service/transactionservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// O .env é opcional: em Docker as variáveis já vêm do ambiente.
	if err := godotenv.Load(); err != nil {
		stdlog.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("❌ %v", err)
	}
	log := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}
	log.Info("⚡ Inicializando serviço GoCorretora...", map[string]interface{}{"env": cfg.Environment})

	// 2. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	if cfg.AutoMigrate {
		if err := database.ApplySchema(db); err != nil {
			log.Fatal("Falha ao aplicar o schema do banco.", err)
		}
		log.Info("Schema do banco aplicado.", nil)
	}

	store := database.NewStore(db, cfg.DBTimeout, log)

	// 3. Segurança
	hasher := password.NewHasher(cfg.BcryptCost)
	tokenSvc, err := token.NewService(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenExpiry)
	if err != nil {
		log.Fatal("Configuração de JWT inválida.", err)
	}

	// 4. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	familyRepo := personrepo.NewPersonRepository(domain.KindUser, log)
	ownerRepo := personrepo.NewPersonRepository(domain.KindOwner, log)
	brokerRepo := personrepo.NewPersonRepository(domain.KindBroker, log)
	tagRepo := tagrepo.NewTagRepository(log)
	addressRepo := addressrepo.NewAddressRepository(log)
	phoneRepo := phonerepo.NewPhoneRepository(log)
	propertyRepo := propertyrepo.NewPropertyRepository(log)
	transactionRepo := transactionrepo.NewTransactionRepository(log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços
	userSvc := personservice.NewService(domain.KindUser, store, familyRepo, familyRepo, hasher, log)
	ownerSvc := personservice.NewService(domain.KindOwner, store, ownerRepo, familyRepo, hasher, log)
	brokerSvc := personservice.NewService(domain.KindBroker, store, brokerRepo, familyRepo, hasher, log)
	tagSvc := tagservice.NewService(store, tagRepo, log)
	addressSvc := addressservice.NewService(store, addressRepo, log)
	phoneSvc := phoneservice.NewService(store, phoneRepo, familyRepo, log)
	propertySvc := propertyservice.NewService(store, propertyRepo, ownerRepo, addressRepo, tagRepo, log)
	transactionSvc := transactionservice.NewService(store, transactionRepo, brokerRepo, propertyRepo, log)
	authSvc := authservice.NewService(userSvc, tokenSvc, log)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers
	handlers := router.Handlers{
		Auth:               auth.NewHandler(authSvc, log),
		Users:              resource.NewHandler[domain.Person, domain.PersonInput](userSvc, log),
		Owners:             resource.NewHandler[domain.Person, domain.PersonInput](ownerSvc, log),
		Brokers:            resource.NewHandler[domain.Person, domain.PersonInput](brokerSvc, log),
		Properties:         resource.NewHandler[domain.Property, domain.PropertyInput](propertySvc, log),
		Tags:               resource.NewHandler[domain.Tag, domain.TagInput](tagSvc, log),
		Phones:             resource.NewHandler[domain.Phone, domain.PhoneInput](phoneSvc, log),
		Addresses:          resource.NewHandler[domain.Address, domain.AddressInput](addressSvc, log),
		Transactions:       resource.NewHandler[domain.Transaction, domain.TransactionInput](transactionSvc, log),
		UserPhones:         resource.Related(phoneSvc.ListByUser, log),
		OwnerProperties:    resource.Related(propertySvc.ListByOwner, log),
		BrokerTransactions: resource.Related(transactionSvc.ListByBroker, log),
	}

	// D. Métricas (Prometheus)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewMetrics(reg, db)
	if err != nil {
		log.Fatal("Falha ao registrar métricas.", err)
	}

	// 5. Roteador e Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(handlers, tokenSvc, metrics, log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoCorretora ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
