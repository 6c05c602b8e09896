package eval

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

var exportHeader = []string{
	"timestamp", "question", "faithfulness", "relevance",
	"contextual_precision", "answer_correctness", "average_score",
}

// ExportCSV writes the evaluation records as a flat tabular file for offline
// analysis. Records without a correctness score get an empty cell.
func ExportCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range records {
		correctness := ""
		if r.Scores.AnswerCorrectness != nil {
			correctness = formatScore(*r.Scores.AnswerCorrectness)
		}
		row := []string{
			r.Timestamp.Format(time.RFC3339),
			r.Question,
			formatScore(r.Scores.Faithfulness),
			formatScore(r.Scores.Relevance),
			formatScore(r.Scores.ContextualPrecision),
			correctness,
			formatScore(r.Scores.Average),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the records to a timestamped CSV file and returns its name.
func ExportFile(records []Record, now time.Time) (string, error) {
	name := fmt.Sprintf("rag_evaluation_%s.csv", now.Format("20060102_1504"))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := ExportCSV(f, records); err != nil {
		return "", err
	}
	return name, nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
