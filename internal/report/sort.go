package report

import "sort"

// SortFiles sorts results by status (FAILED > CHANGED > CLEAN), then by path.
func SortFiles(files []FileResult) {
	sort.SliceStable(files, func(i, j int) bool {
		oi := files[i].Status.order()
		oj := files[j].Status.order()
		if oi != oj {
			return oi < oj
		}
		return files[i].Path < files[j].Path
	})
}
