package api

import (
	"log"

	"github.com/ciet-hostel/gatepass-svc/config"
	"github.com/ciet-hostel/gatepass-svc/infra/queue"
	"github.com/ciet-hostel/gatepass-svc/internal/api/rest/handlers"
	"github.com/ciet-hostel/gatepass-svc/internal/domain"
	"github.com/ciet-hostel/gatepass-svc/internal/helper"
	"github.com/ciet-hostel/gatepass-svc/internal/repository"
	"github.com/ciet-hostel/gatepass-svc/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260831

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.StudentCredential{},
		&domain.StaffAccount{},
		&domain.GatePass{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	seedStaff(db, cfg.StaffDefaultPassword)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	passRepo := repository.NewGatePassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// ---------- Services ----------
	accountSvc := services.NewAccountService(studentRepo, staffRepo, authHelper)
	passSvc := services.NewGatePassService(passRepo, kafkaProducer, cfg.DefaultParentPhone)

	// ---------- SMS worker ----------
	// Same module, separate consumer loop: parent notifications are decoupled
	// from the request path and never block a decision.
	if cfg.KafkaBroker != "" {
		smsHandler := handlers.NewSMSHandler(services.NewSMSService(services.NewLogNotifier()))
		consumer := queue.NewKafkaConsumer(
			cfg.KafkaBroker,
			cfg.KafkaTopic,
			cfg.KafkaGroupID,
			cfg.KafkaUsername,
			cfg.KafkaPassword,
			smsHandler,
		)
		go consumer.Listen()
	}

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(accountSvc)
	passHandler := handlers.NewGatePassHandler(passSvc, accountSvc, authHelper)
	passHandler.SetupRoutes(app, authHandler)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// seedStaff inserts the fixed approver and admin accounts on first boot.
// Staff have no self-service registration; new staff are added here or
// directly in the table.
func seedStaff(db *gorm.DB, defaultPassword string) {
	cse := "CSE"
	accounts := []domain.StaffAccount{
		{Username: "tutor1", Name: "Dr. Priya Singh", Role: domain.RoleTutor, Department: &cse},
		{Username: "warden1", Name: "Dr. Anil Kumar", Role: domain.RoleWarden},
		{Username: "hod1", Name: "Dr. Ramesh Patel", Role: domain.RoleHod, Department: &cse},
		{Username: "admin1", Name: "Suresh Menon", Role: domain.RoleAdmin},
	}

	for _, acc := range accounts {
		var existing domain.StaffAccount
		err := db.Where("username = ?", acc.Username).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("seed staff %s: %v", acc.Username, err)
				continue
			}
			acc.PasswordHash = string(hashed)
			_ = db.Create(&acc).Error
		}
	}
}
