package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/recyclewise/internal/auth"
	"github.com/joshua-takyi/recyclewise/internal/config"
	"github.com/joshua-takyi/recyclewise/internal/models"
	"github.com/joshua-takyi/recyclewise/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Config        *config.Config
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client
	EventService  *services.EventService
	Verifier      auth.TokenVerifier
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	cld *cloudinary.Cloudinary,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)
	eventService := services.NewEventService(repo)

	var verifier auth.TokenVerifier
	if cfg.AuthJWKSURL != "" {
		verifier = auth.NewJWKSVerifier(cfg.AuthJWKSURL)
	} else {
		verifier = auth.NewGoTrueVerifier(cfg.AuthURL, cfg.AuthAnonKey)
	}

	return &Container{
		Logger:        logger,
		Config:        cfg,
		Cloudinary:    cld,
		MongoDBClient: mongoDBClient,
		EventService:  eventService,
		Verifier:      verifier,
	}
}
