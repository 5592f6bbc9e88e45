package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Gakkilovemath/mlpack"
	"github.com/Gakkilovemath/mlpack/dataset/csv"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*datasetInput
	modelInput          string
	modelName           string
	predictionsOutput   string
	probabilitiesOutput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{datasetInput: &datasetInput{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Classify a dataset with a trained tree",
		Long:  `Classify the points of a dataset with a trained tree, optionally saving the predictions and class probabilities and reporting the accuracy against the dataset's labels.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			t, err := loadTree(ctx, config.modelInput, config.modelName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			m, labels, _, err := config.load(ctx, t.Schema)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Classifying %d points...", m.Count())
			predictions, probabilities, err := mlpack.Classify(ctx, t, m)
			if err != nil {
				fmt.Fprintf(os.Stderr, "classifying points: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			if len(labels) > 0 {
				accuracy, correct := mlpack.Accuracy(predictions, labels)
				fmt.Printf("%g%% correct on test set (%d / %d).\n", accuracy*100, correct, m.Count())
			}
			if config.predictionsOutput != "" {
				err = writeCSVOutput(config.predictionsOutput, func(f *os.File) error {
					return csv.WritePredictions(f, predictions)
				})
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
			}
			if config.probabilitiesOutput != "" {
				err = writeCSVOutput(config.probabilitiesOutput, func(f *os.File) error {
					return csv.WriteProbabilities(f, probabilities)
				})
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.modelInput), "model", "t", "", "path to a file or a redis:// URL from which the trained model will be loaded (required)")
	cmd.PersistentFlags().StringVar(&(config.modelName), "model-name", "decision-tree", "name under which the model was saved when the model input is a redis:// URL")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the test data (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.labelFeature), "label-feature", "l", "", "name of the column or field holding each point's true label, for accuracy reporting (defaults to the last CSV column)")
	cmd.PersistentFlags().StringVarP(&(config.predictionsOutput), "predictions", "p", "", "path to a file to which the predicted class of each point will be written as CSV")
	cmd.PersistentFlags().StringVarP(&(config.probabilitiesOutput), "probabilities", "P", "", "path to a file to which the class probabilities of each point will be written as CSV")
	cmd.PersistentFlags().StringVar(&(config.table), "table", "samples", "table holding the test data when the input is a SQL database")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.modelInput == "" {
		return fmt.Errorf("required model flag was not set")
	}
	return nil
}

func writeCSVOutput(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %s: %v", path, err)
	}
	defer f.Close()
	return write(f)
}
