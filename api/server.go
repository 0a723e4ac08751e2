package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/miracool-ctrl/backend-voteapp/api/controllers"
	"github.com/miracool-ctrl/backend-voteapp/api/transport"
	"github.com/miracool-ctrl/backend-voteapp/assets"
	"github.com/miracool-ctrl/backend-voteapp/auth"
	"github.com/miracool-ctrl/backend-voteapp/logging"
	"github.com/miracool-ctrl/backend-voteapp/storage"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	ctx := context.Background()

	storages, store := s.buildDrivers(ctx)

	if err := ProvisionAdmins(ctx, storages.Voters, s.config.AdminConfig.Emails); err != nil {
		logging.Log.Errorf("failed to provision admins: %v", err)
	}

	r := s.buildEngine(storages, store)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// buildEngine registers every controller on a fresh router.
func (s *Server) buildEngine(storages *storage.Storages, store assets.Store) *gin.Engine {
	ginMode := gin.ReleaseMode
	if os.Getenv("APP_ENV") == "local" {
		ginMode = gin.DebugMode
	}
	r := transport.NewRouter(ginMode, s.config.AllowedOrigins, s.config.UploadConfig.MaxBytes)

	tokens := auth.NewTokenIssuer(s.config.JWTSecret, s.config.TokenTTL)
	authenticate := transport.AuthMiddleware(tokens)
	maxBytes := s.config.UploadConfig.MaxBytes

	//Register controllers
	voterController := controllers.NewVoterController(storages.Voters, tokens, s.config.AdminConfig.Emails)
	voterController.RegisterRoutes(r, authenticate)
	electionController := controllers.NewElectionController(storages.Elections, storages.Candidates, storages.Voters, store, maxBytes)
	electionController.RegisterRoutes(r, authenticate)
	candidateController := controllers.NewCandidateController(storages.Candidates, storages.Elections, store, maxBytes)
	candidateController.RegisterRoutes(r, authenticate)
	votingController := controllers.NewVotingController(storages.Votes, storages.Candidates, storages.Voters, storages.Elections)
	votingController.RegisterRoutes(r, authenticate)

	return r
}

func (s *Server) buildDrivers(ctx context.Context) (*storage.Storages, assets.Store) {
	needsAWS := s.config.StorageConfig.Driver != DriverMemory || s.config.AssetsConfig.Driver != DriverMemory

	var cfg aws.Config
	if needsAWS {
		var err error
		cfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logging.Log.Errorf("failed to load AWS config: %v", err)
			panic("failed to load AWS config")
		}
	}

	var storages *storage.Storages
	switch s.config.StorageConfig.Driver {
	case DriverMemory:
		logging.Log.Warn("Using in-memory storage, data is lost on restart")
		storages = storage.NewMemoryStorages()
	case DriverDynamo:
		storages = storage.NewDynamoStorages(dynamodb.NewFromConfig(cfg), storage.TableNames{
			Voters:                  s.config.TableNameVoters,
			VoterEmails:             s.config.TableNameVoterEmails,
			Elections:               s.config.TableNameElections,
			Candidates:              s.config.TableNameCandidates,
			CandidatesElectionIndex: s.config.CandidatesElectionIndex,
		})
	default:
		logging.Log.Fatalf("unknown storage driver '%s'", s.config.StorageConfig.Driver)
	}

	var store assets.Store
	switch s.config.AssetsConfig.Driver {
	case DriverMemory:
		store = assets.NewMemoryStore(s.config.AssetsConfig.BaseURL)
	case DriverS3:
		store = &assets.S3Store{
			Client:  s3.NewFromConfig(cfg),
			Bucket:  s.config.AssetsConfig.Bucket,
			BaseURL: s.config.AssetsConfig.BaseURL,
		}
	default:
		logging.Log.Fatalf("unknown assets driver '%s'", s.config.AssetsConfig.Driver)
	}

	return storages, store
}

// ProvisionAdmins grants the administrator role to already registered
// voters whose email is configured in admin.Emails. Unknown emails are
// skipped; they get the role when they register.
func ProvisionAdmins(ctx context.Context, voters storage.VoterStorage, emails []string) error {
	var errs []error
	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		voter, err := voters.GetByEmail(ctx, email)
		if errors.Is(err, storage.ErrNotFound) {
			logging.Log.Infof("AUTH: admin %s not registered yet", email)
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("lookup %s: %w", email, err))
			continue
		}
		if voter.IsAdmin {
			continue
		}
		if err := voters.SetAdmin(ctx, voter.ID, true); err != nil {
			errs = append(errs, fmt.Errorf("promote %s: %w", email, err))
			continue
		}
		logging.Log.Infof("AUTH: promoted %s to admin", email)
	}
	return errors.Join(errs...)
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
