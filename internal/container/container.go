package container

import (
	"log/slog"
	"time"

	"github.com/joshua-takyi/gigboard/internal/config"
	"github.com/joshua-takyi/gigboard/internal/ingest"
	"github.com/joshua-takyi/gigboard/internal/models"
	"github.com/joshua-takyi/gigboard/internal/services"
	"github.com/joshua-takyi/gigboard/internal/ticketmaster"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client

	EventService  *services.EventService
	VenueService  *services.VenuesService
	ReviewService *services.ReviewService
	Syncer        *ingest.Syncer
	Gate          *ingest.Gate
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	cfg *config.Config,
) *Container {
	supa := models.SupabaseNewRepo(supabaseClient)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)

	tmClient := ticketmaster.NewClient(ticketmaster.Config{
		APIKey: cfg.TicketmasterAPIKey,
		Logger: logger,
	})

	syncer := ingest.NewSyncer(tmClient, supa, cfg.CountryCode, logger)
	gate := ingest.NewGate(supa, time.Duration(cfg.SyncMaxAgeHours)*time.Hour)

	eventService := services.NewEventService(supa, tmClient, gate, syncer, cfg.CountryCode, logger)
	venueService := services.NewVenuesService(supa)
	reviewService := services.NewReviewService(mongoRepo)

	return &Container{
		Logger:         logger,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		EventService:   eventService,
		VenueService:   venueService,
		ReviewService:  reviewService,
		Syncer:         syncer,
		Gate:           gate,
	}
}
