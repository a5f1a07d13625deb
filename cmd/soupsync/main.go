package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vmartynenko/go-soupsync/internal/adapter"
	"github.com/vmartynenko/go-soupsync/internal/config"
	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/internal/service"
	"github.com/vmartynenko/go-soupsync/internal/soql"
	"github.com/vmartynenko/go-soupsync/internal/store"
	"github.com/vmartynenko/go-soupsync/internal/utils"
	"github.com/vmartynenko/go-soupsync/internal/workers"
	"github.com/vmartynenko/go-soupsync/migrations"
	"github.com/vmartynenko/go-soupsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// accountsSoup is the soup the demo client keeps in sync with the Account
// object on the remote side.
const accountsSoup = "accounts"

func main() {
	printBuildInfo()

	log := logger.NewLogger("soupsync")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	st, err := store.New(ctx, cfg.Storage.DB.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local store")
	}
	defer st.Close()

	if err = migrations.Migrate(st.DB()); err != nil {
		log.Fatal().Err(err).Msg("migrate local store")
	}

	client := adapter.NewHTTPRestClient(adapter.HTTPClientConfig{
		BaseURL:     cfg.Remote.InstanceURL,
		APIVersion:  cfg.Remote.APIVersion,
		AccessToken: cfg.Remote.AccessToken,
		Timeout:     cfg.Remote.RequestTimeout,
	})

	identity, err := utils.SubjectFromToken(cfg.Remote.AccessToken)
	if err != nil {
		log.Fatal().Err(err).Msg("derive identity from access token")
	}

	registry := service.NewRegistry(func(context.Context, string, string) (*service.SyncManager, error) {
		return service.NewSyncManager(st, client, nil, log), nil
	})
	manager, err := registry.GetInstance(ctx, identity, "")
	if err != nil {
		log.Fatal().Err(err).Msg("create sync manager")
	}

	if err = st.RegisterSoup(ctx, accountsSoup, []store.IndexSpec{
		{Path: models.FieldID, Type: store.IndexString},
		{Path: "Name", Type: store.IndexString},
		{Path: models.LocalFlag, Type: store.IndexString},
	}); err != nil {
		log.Fatal().Err(err).Msg("register soup")
	}

	downState, err := runSyncDown(ctx, manager)
	if err != nil {
		log.Fatal().Err(err).Msg("sync down")
	}

	if err = runSyncUp(ctx, manager); err != nil {
		log.Fatal().Err(err).Msg("sync up")
	}

	// keep re-running the sync-down until interrupted
	job := service.NewSyncJob(manager, downState.ID, printProgress, log)
	workers.New(workers.WorkerFunc(func() {
		job.Start(ctx, cfg.Workers.SyncInterval)
	})).Run()
	defer job.Stop()

	log.Info().Dur("interval", cfg.Workers.SyncInterval).Msg("scheduled re-sync running, Ctrl-C to stop")
	<-ctx.Done()
}

func runSyncDown(ctx context.Context, manager *service.SyncManager) (models.SyncState, error) {
	query := soql.NewBuilder("Account").
		Fields(models.FieldID, "Name", models.FieldLastModifiedDate).
		Build()
	target, err := models.NewTargetSpec(models.QueryTypeSoql, map[string]any{"query": query})
	if err != nil {
		return models.SyncState{}, err
	}

	done := make(chan models.SyncState, 1)
	state, err := manager.SyncDown(ctx, target, accountsSoup,
		models.SyncOptions{MergeMode: models.MergeModeLeaveIfChanged},
		terminalCallback(done))
	if err != nil {
		return models.SyncState{}, err
	}

	final := <-done
	if final.Status != models.SyncStatusDone {
		return final, fmt.Errorf("sync %d ended with status %s", state.ID, final.Status)
	}
	fmt.Printf("sync down complete: %d records\n", final.TotalSize)
	return final, nil
}

func runSyncUp(ctx context.Context, manager *service.SyncManager) error {
	done := make(chan models.SyncState, 1)
	state, err := manager.SyncUp(ctx, accountsSoup, models.SyncOptions{}, terminalCallback(done))
	if err != nil {
		return err
	}

	final := <-done
	if final.Status != models.SyncStatusDone {
		return fmt.Errorf("sync %d ended with status %s", state.ID, final.Status)
	}
	fmt.Printf("sync up complete: %d records pushed\n", final.TotalSize)
	return nil
}

// terminalCallback prints progress and forwards the terminal state once.
func terminalCallback(done chan<- models.SyncState) service.Callback {
	return func(state models.SyncState) {
		printProgress(state)
		if state.Status == models.SyncStatusDone || state.Status == models.SyncStatusFailed {
			select {
			case done <- state:
			default:
			}
		}
	}
}

func printProgress(state models.SyncState) {
	fmt.Fprintf(os.Stderr, "sync %d [%s] %s %d%%\n",
		state.ID, state.Type, state.Status, state.Progress)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
