// Package seed populates an empty database with starter data.
package seed

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/radimbig2/SRM/pkg/models"
	"github.com/radimbig2/SRM/pkg/repositories"
)

var defaultClients = []string{"Client A", "Client B", "Client C"}

// Clients inserts a few starter clients when the clients table is empty so a
// fresh install has something to attach vacancies to.
func Clients(ctx context.Context, repo repositories.ClientRepo, logger ectologger.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range defaultClients {
		if _, err := repo.Create(ctx, models.CreateClientRequest{Name: name}); err != nil {
			return err
		}
	}

	logger.WithContext(ctx).WithFields(map[string]any{
		"clients": len(defaultClients),
	}).Info("Seeded starter clients")
	return nil
}
