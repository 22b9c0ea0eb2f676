// main.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/edukita/studyhub/internal/config"
	"github.com/edukita/studyhub/internal/database"
	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/services"
	"github.com/edukita/studyhub/internal/storage"
	"github.com/edukita/studyhub/internal/utils"
)

// Container healthcheck probe. Prints the check result as JSON and exits
// non-zero when the service or a dependency is unhealthy.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	// Fast local check that the server is accepting connections
	if err := utils.PingService("http://localhost:"+cfg.Port, 1500*time.Millisecond); err != nil {
		log.Fatalf("Server not listening on port %s: %v", cfg.Port, err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	ctx := context.Background()
	store, err := storage.NewGCS(ctx, zlog, cfg.GCSBucket)
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}
	defer store.Close()

	result := services.HealthCheck(ctx, cfg, db, store, zlog)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
