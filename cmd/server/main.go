package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matthewbaird/silic/internal/activity"
	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/config"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/editor"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/eventbus"
	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/mock"
	"github.com/matthewbaird/silic/internal/sapdata"
	"github.com/matthewbaird/silic/internal/server"
	"github.com/matthewbaird/silic/internal/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	gen := mock.New(cfg.MockSeed, cfg.Policy)
	generate := func() types.Dataset { return gen.Dataset(cfg.SeedCount) }
	ds := sapdata.LoadOrGenerate(ctx, client, cfg.DataSource, generate)
	store := catalog.New()
	if err := store.Load(ds); err != nil {
		log.Printf("loading catalog: %v; using generated demo data", err)
		ds = generate()
		ds.Notice = sapdata.FallbackNotice
		if err := store.Load(ds); err != nil {
			log.Fatalf("loading generated catalog: %v", err)
		}
	}
	log.Printf("catalog loaded from %s: %d properties, %d landlords",
		ds.Source, len(ds.Properties), len(ds.Landlords))

	history, closeHistory, err := openActivity(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("opening activity store: %v", err)
	}
	defer closeHistory()

	kvStore, err := kv.Open(ctx, cfg.KV)
	if err != nil {
		log.Fatalf("opening %s kv store: %v", cfg.KV.Driver, err)
	}
	defer kvStore.Close()

	form, err := edital.LoadFile(cfg.EditalSchemaPath)
	if err != nil {
		log.Fatalf("loading edital schema: %v", err)
	}
	adapted := edital.Adapt(form)
	validator, err := edital.NewValidator(adapted)
	if err != nil {
		log.Fatalf("compiling edital schema: %v", err)
	}

	bus := eventbus.New(256)
	bus.Subscribe("log", eventbus.NewLogConsumer())
	bus.Subscribe("audit", eventbus.NewAuditConsumer(store, cfg.Policy), eventbus.AuditTriggers...)
	bus.Start(ctx)
	defer bus.Stop()

	recorder := event.NewActivityRecorder(history)
	recorder.SetPublisher(bus)
	if err := recorder.Record(ctx, event.NewDatasetLoaded(event.DatasetLoadedPayload{
		Source:     ds.Source,
		Notice:     ds.Notice,
		Properties: len(ds.Properties),
		Landlords:  len(ds.Landlords),
	})); err != nil {
		log.Printf("recording dataset load: %v", err)
	}

	sessions := editor.NewManager(adapted, store, cfg.SessionMaxAge, cfg.SessionIdle)
	go sessions.Sweep(ctx, time.Minute)

	if err := server.Run(ctx, server.Config{
		Port:       cfg.Port,
		Catalog:    store,
		Policy:     cfg.Policy,
		Activity:   history,
		Appraisals: kv.NewAppraisals(kvStore),
		Form:       adapted,
		Validator:  validator,
		Sessions:   sessions,
		Recorder:   recorder,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openActivity keeps history in SQLite when dsn is set, in memory otherwise.
func openActivity(ctx context.Context, dsn string) (activity.Store, func(), error) {
	if dsn == "" {
		return activity.NewMemoryStore(), func() {}, nil
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1)

	s := activity.NewSQLStore(db)
	if err := s.CreateTable(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Println("activity table ready")
	return s, func() { db.Close() }, nil
}
