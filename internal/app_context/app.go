package appcontext

import (
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/auth"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/config"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/gmail"
	"github.com/Vikramsingh92639/email-nexus-netflix/internal/repository"
	"go.uber.org/zap"
)

// Application contains core dependencies for the app.
type Application struct {
	// Config holds application settings provided from .env file.
	Config *config.Config

	Logger *zap.SugaredLogger

	// Repository provides access to data storage operations.
	Repository *repository.Repository

	// JWTService manages admin session tokens: generate, verify, refresh.
	JWTService auth.JWTInterface

	// GmailClient talks to Google's token endpoint and the Gmail API.
	GmailClient *gmail.Client

	// Searcher runs the authorized inbox search end to end.
	Searcher *gmail.Searcher
}
