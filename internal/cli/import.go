package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/model"
	"go.uber.org/zap"
)

// Import reads an analysis document from file and stores it. A non-empty id
// overrides the one in the document. The stored id is returned.
func Import(ctx context.Context, app *App, file string, id string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var a model.Analysis
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return "", fmt.Errorf("decode %s: %w", file, err)
	}
	if id != "" {
		a.ID = id
	}

	if err := app.Store.Put(ctx, &a); err != nil {
		return "", err
	}

	logger.Info("Imported analysis", zap.String("file", file), zap.String("analysis_id", a.ID), zap.Int("hits", len(a.Results)))
	return a.ID, nil
}
