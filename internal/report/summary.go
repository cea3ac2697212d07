package report

// ComputeSummary derives the tallies from the file results.
func ComputeSummary(files []FileResult) Summary {
	s := Summary{Files: len(files)}
	for _, f := range files {
		switch f.Status {
		case StatusChanged:
			s.Changed++
			s.Removed += f.Removed
		case StatusClean:
			s.Clean++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
