package app

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/vk/graphtrain/internal/confignode"
	"github.com/vk/graphtrain/internal/ctxlog"
	"github.com/vk/graphtrain/internal/dataset"
	"github.com/vk/graphtrain/internal/fsutil"
	"github.com/vk/graphtrain/internal/training"
	"github.com/vk/graphtrain/internal/truthdb"
)

// Run loads the model and dataset documents, reconstructs the objects they
// describe, and validates the binding between them. Any failure aborts run
// setup; nothing downstream of a validation error ever executes.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.")

	schema, err := a.loadSchema(appConfig.DatasetPath)
	if err != nil {
		return err
	}
	logger.Info("Dataset schema loaded.", "path", schema.Path, "truth_columns", len(schema.Truth), "partitions", len(schema.Selection))

	model, err := a.loadModel(ctx, appConfig.ModelPath)
	if err != nil {
		return err
	}
	logger.Info("Model reconstructed.", "tasks", len(model.Tasks))

	// The dataset's graph definition is part of the documents' contract:
	// building it verifies its classes resolve, even though the numeric
	// layers consuming it live elsewhere.
	if schema.GraphDefinition != nil {
		if _, err := a.builder.Build(ctx, schema.GraphDefinition); err != nil {
			return fmt.Errorf("dataset graph_definition: %w", err)
		}
	}

	parts, err := dataset.ResolveSelection(schema, schema.Seed)
	if err != nil {
		return err
	}
	if err := dataset.VerifyPartitions(ctx, parts, appConfig.PartitionProbe); err != nil {
		return err
	}
	logger.Info("Selection partitions verified.", "partitions", len(parts), "probe", appConfig.PartitionProbe)

	if err := training.Validate(model, schema); err != nil {
		return err
	}
	required := training.RequiredLabels(model.Tasks)
	logger.Info("Model/dataset binding validated.", "required_labels", required)

	if appConfig.VerifyTruth {
		if err := a.verifyTruth(ctx, schema, required); err != nil {
			return err
		}
		logger.Info("Truth store verified.", "columns", len(required))
	}

	logger.Debug("App.Run method finished.")
	return nil
}

// verifyTruth opens the schema's SQLite store and confirms the truth table
// actually serves every required column.
func (a *App) verifyTruth(ctx context.Context, schema *dataset.Schema, columns []string) error {
	store, err := truthdb.Open(schema.Path)
	if err != nil {
		return err
	}
	_, err = dataset.LoadTruth(ctx, store, schema, columns, nil)
	return err
}

func (a *App) loadSchema(path string) (*dataset.Schema, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return dataset.ParseSchema(data)
}

func (a *App) loadModel(ctx context.Context, path string) (*training.Model, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	node, err := confignode.Parse(data)
	if err != nil {
		return nil, err
	}

	obj, err := a.builder.Build(ctx, node)
	if err != nil {
		return nil, err
	}
	model, ok := obj.(*training.Model)
	if !ok {
		return nil, fmt.Errorf("model document built a %T, expected a model", obj)
	}
	return model, nil
}

// readDocument accepts either a document path or a directory containing
// exactly one .yml/.yaml document.
func readDocument(path string) ([]byte, error) {
	files, err := fsutil.FindFilesByExtension(path, ".yml", ".yaml")
	if err != nil {
		return nil, err
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("expected exactly one configuration document at %s, found %d", path, len(files))
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration document: %w", err)
	}
	return data, nil
}
