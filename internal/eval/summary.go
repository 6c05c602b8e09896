package eval

// Summary aggregates the stored evaluation records for the dashboard view.
type Summary struct {
	Count                   int
	MeanFaithfulness        float64
	MeanRelevance           float64
	MeanContextualPrecision float64
	// MeanAnswerCorrectness averages only the records that carry a
	// correctness score; CorrectnessCount says how many that was.
	MeanAnswerCorrectness float64
	CorrectnessCount      int
	MeanAverage           float64
}

// Summarize computes per-metric means over the given records.
func Summarize(records []Record) Summary {
	s := Summary{Count: len(records)}
	if len(records) == 0 {
		return s
	}
	for _, r := range records {
		s.MeanFaithfulness += r.Scores.Faithfulness
		s.MeanRelevance += r.Scores.Relevance
		s.MeanContextualPrecision += r.Scores.ContextualPrecision
		s.MeanAverage += r.Scores.Average
		if r.Scores.AnswerCorrectness != nil {
			s.MeanAnswerCorrectness += *r.Scores.AnswerCorrectness
			s.CorrectnessCount++
		}
	}
	n := float64(len(records))
	s.MeanFaithfulness /= n
	s.MeanRelevance /= n
	s.MeanContextualPrecision /= n
	s.MeanAverage /= n
	if s.CorrectnessCount > 0 {
		s.MeanAnswerCorrectness /= float64(s.CorrectnessCount)
	}
	return s
}
