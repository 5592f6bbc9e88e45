package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gakkilovemath/mlpack"
	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature/yaml"
	"github.com/spf13/cobra"
)

type trainCmdConfig struct {
	*datasetInput
	metadataInput      string
	output             string
	modelName          string
	minimumLeafSize    int
	minimumGainSplit   float64
	printTrainingError bool
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{datasetInput: &datasetInput{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a decision tree on a labeled dataset",
		Long:  `Train a decision tree on a dataset with numeric and/or categorical features and integer class labels, and save the resulting model.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			schema, err := yaml.ReadSchemaFromFile(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			m, labels, weights, err := config.load(ctx, schema)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if len(labels) == 0 {
				fmt.Fprintln(os.Stderr, "training dataset carries no labels")
				os.Exit(5)
			}
			numClasses, err := dataset.NumClasses(labels)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			if len(weights) == 0 {
				weights = nil
			}
			config.Logf("Training tree on %d points with %d dimensions and %d classes...", m.Count(), m.Dimensions(), numClasses)
			t, err := mlpack.Train(ctx, m, labels, numClasses, weights, config.minimumLeafSize, config.minimumGainSplit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "training tree: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done: %d nodes, height %d", t.CountNodes(), t.Height())
			config.Logf("%v", t)
			if config.printTrainingError {
				predictions, _, err := mlpack.Classify(ctx, t, m)
				if err != nil {
					fmt.Fprintf(os.Stderr, "classifying training set: %v\n", err)
					os.Exit(7)
				}
				accuracy, correct := mlpack.Accuracy(predictions, labels)
				fmt.Printf("%g%% correct on training set (%d / %d).\n", accuracy*100, correct, m.Count())
			}
			err = saveTree(ctx, config.output, config.modelName, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the training data (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "l", "", "name of the column or field holding each point's class label (defaults to the last CSV column; required for SQL and MongoDB inputs)")
	cmd.PersistentFlags().StringVarP(&(config.weightFeature), "weight-feature", "w", "", "name of the column or field holding each point's weight (defaults to no weights)")
	cmd.PersistentFlags().IntVarP(&(config.minimumLeafSize), "minimum-leaf-size", "n", mlpack.DefaultMinimumLeafSize, "minimum number of points in any split-resulting partition")
	cmd.PersistentFlags().Float64VarP(&(config.minimumGainSplit), "minimum-gain-split", "g", mlpack.DefaultMinimumGainSplit, "minimum impurity reduction a split must yield, in (0, 1)")
	cmd.PersistentFlags().BoolVarP(&(config.printTrainingError), "print-training-error", "e", false, "classify the training set with the trained tree and print the accuracy")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file or a redis:// URL to which the trained model will be saved (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "decision-tree", "name under which the model is saved when the output is a redis:// URL")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "table holding the training data when the input is a SQL database")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (tcc *trainCmdConfig) Validate() error {
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.minimumLeafSize <= 0 {
		return fmt.Errorf("minimum-leaf-size must be positive, got %d", tcc.minimumLeafSize)
	}
	if tcc.minimumGainSplit <= 0.0 || tcc.minimumGainSplit >= 1.0 {
		return fmt.Errorf("minimum-gain-split must be in (0, 1), got %v", tcc.minimumGainSplit)
	}
	return nil
}
