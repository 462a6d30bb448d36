package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fabiodalez-dev/photoCMS-sub001/config"
	"github.com/fabiodalez-dev/photoCMS-sub001/database"
	"github.com/fabiodalez-dev/photoCMS-sub001/media"
	"github.com/fabiodalez-dev/photoCMS-sub001/metadata"
	"github.com/fabiodalez-dev/photoCMS-sub001/repository"
	"github.com/fabiodalez-dev/photoCMS-sub001/services"
	"github.com/fabiodalez-dev/photoCMS-sub001/workers"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.OriginalsPath, cfg.DerivativesPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	gormDB, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(gormDB); err != nil {
		log.Fatalf("FATAL: Failed to migrate database schema: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to access underlying database connection: %v", err)
	}
	defer sqlDB.Close()

	settingsStore := database.NewSettingsStore(sqlDB)
	imageSettings := config.LoadImageSettings(settingsStore)

	mediaSubDirs := map[media.AssetType]string{
		media.AssetTypeOriginal:   filepath.Base(cfg.OriginalsPath),
		media.AssetTypeDerivative: filepath.Base(cfg.DerivativesPath),
	}
	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath, mediaSubDirs)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}

	media.InitCodecs()
	defer media.ShutdownCodecs()

	mediaProcessor := media.NewProcessor(mediaStore)
	extractor := metadata.NewExtractor()

	assetRepo := repository.NewAssetRepository(gormDB)
	equipmentRepo := repository.NewEquipmentRepository(gormDB)
	variantRepo := repository.NewVariantRepository(gormDB)

	equipmentResolver := services.NewEquipmentResolver(equipmentRepo)
	orchestrator := services.NewIngestionOrchestrator(
		mediaStore, mediaProcessor, extractor, equipmentResolver,
		assetRepo, variantRepo, imageSettings,
	)

	generator := workers.NewDerivativeGenerator(mediaStore, mediaProcessor, assetRepo, variantRepo, imageSettings)

	// one-shot mode: photocms ingest <albumID> <file> [file...]
	if len(os.Args) >= 4 && os.Args[1] == "ingest" {
		runIngest(orchestrator, generator, os.Args[2], os.Args[3:])
		return
	}

	stop := make(chan struct{})
	scheduler := workers.NewMaintenanceScheduler(sqlDB, settingsStore, generator, imageSettings, cfg.MaintenanceLockPath)
	scheduler.Start(stop)

	log.Printf("Media core running (db=%s storage=%s)", cfg.DatabasePath, cfg.MediaStoragePath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	close(stop)
}

// runIngest processes files from the command line and renders their full
// derivative matrices before exiting.
func runIngest(orchestrator *services.IngestionOrchestrator, generator *workers.DerivativeGenerator, albumArg string, paths []string) {
	albumID, err := strconv.ParseUint(albumArg, 10, 32)
	if err != nil {
		log.Fatalf("FATAL: Invalid album id %q: %v", albumArg, err)
	}

	for _, path := range paths {
		asset, err := orchestrator.Ingest(uint(albumID), path)
		if err != nil {
			log.Printf("Error: failed to ingest %s: %v", path, err)
			continue
		}
		log.Printf("Ingested %s as asset %s (%dx%d)", path, asset.ID, asset.Width, asset.Height)

		stats, err := generator.GenerateForAsset(asset.ID, false)
		if err != nil {
			log.Printf("Error: derivative generation failed for asset %s: %v", asset.ID, err)
			continue
		}
		log.Printf("Derivatives for asset %s: %s", asset.ID, stats)
	}
}
