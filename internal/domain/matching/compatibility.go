package matching

// Types lists the sixteen MBTI codes in the column order of compatibilityRows.
var Types = [16]string{
	"INFP", "ENFP", "INFJ", "ENFJ",
	"INTJ", "ENTJ", "INTP", "ENTP",
	"ISFP", "ESFP", "ISTP", "ESTP",
	"ISFJ", "ESFJ", "ISTJ", "ESTJ",
}

// compatibilityRows is externally sourced data. Rows are the seeker's type,
// columns the candidate's, both in Types order. It is not symmetric
// (ESFP->ENFJ is 5, ENFJ->ESFP is 1) and must stay that way.
var compatibilityRows = map[string][16]int{
	"INFP": {4, 4, 4, 5, 4, 5, 4, 4, 1, 1, 1, 1, 1, 1, 1, 1},
	"ENFP": {4, 4, 5, 4, 5, 4, 4, 4, 1, 1, 1, 1, 1, 1, 1, 1},
	"INFJ": {4, 5, 4, 4, 4, 4, 4, 5, 1, 1, 1, 1, 1, 1, 1, 1},
	"ENFJ": {5, 4, 4, 4, 4, 4, 4, 4, 5, 1, 1, 1, 1, 1, 1, 1},
	"INTJ": {4, 5, 4, 4, 4, 4, 4, 5, 3, 3, 3, 3, 2, 2, 2, 2},
	"ENTJ": {5, 4, 4, 4, 4, 4, 5, 4, 3, 3, 3, 3, 3, 3, 3, 3},
	"INTP": {4, 4, 4, 4, 4, 5, 4, 4, 3, 3, 3, 3, 2, 2, 2, 5},
	"ENTP": {4, 4, 5, 4, 5, 4, 4, 4, 3, 3, 3, 3, 2, 2, 2, 2},
	"ISFP": {1, 1, 1, 5, 3, 3, 3, 3, 2, 2, 2, 2, 3, 5, 3, 5},
	"ESFP": {1, 1, 1, 5, 3, 3, 3, 3, 2, 2, 2, 2, 5, 3, 5, 3},
	"ISTP": {1, 1, 1, 1, 3, 3, 3, 3, 2, 2, 2, 2, 3, 5, 3, 5},
	"ESTP": {1, 1, 1, 1, 3, 3, 3, 3, 2, 2, 2, 2, 5, 3, 5, 3},
	"ISFJ": {1, 1, 1, 1, 2, 3, 2, 2, 3, 5, 3, 5, 4, 4, 4, 4},
	"ESFJ": {1, 1, 1, 1, 2, 3, 2, 2, 5, 3, 5, 3, 4, 4, 4, 4},
	"ISTJ": {1, 1, 1, 1, 2, 3, 2, 2, 3, 5, 3, 5, 4, 4, 4, 4},
	"ESTJ": {1, 1, 1, 1, 2, 3, 5, 2, 5, 3, 5, 3, 4, 4, 4, 4},
}

var typeIndex = func() map[string]int {
	m := make(map[string]int, len(Types))
	for i, t := range Types {
		m[t] = i
	}
	return m
}()

// Compatibility returns the table score of seeker type a towards candidate
// type b, or 0 when either code is not in the table.
func Compatibility(a, b string) int {
	row, ok := compatibilityRows[a]
	if !ok {
		return 0
	}
	col, ok := typeIndex[b]
	if !ok {
		return 0
	}
	return row[col]
}
