package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/assesshub-api/internal/model"
)

func TestSort_EmptyKeyIsIdentity(t *testing.T) {
	t.Parallel()

	records := sampleCandidates()
	out := Sort(records, model.SortSpec{Key: "", Direction: model.SortDesc}, CandidateValue)
	assert.Equal(t, records, out)
}

func TestSort_NumericKey(t *testing.T) {
	t.Parallel()

	out := Sort(sampleCandidates(), model.SortSpec{Key: "cgpa", Direction: model.SortAsc}, CandidateValue)

	require.Len(t, out, 4)
	for i := 1; i < len(out); i++ {
		assert.LessOrEqual(t, out[i-1].CGPA, out[i].CGPA)
	}
}

func TestSort_StringKeyCaseInsensitive(t *testing.T) {
	t.Parallel()

	records := []model.CandidateRecord{
		{Name: "zoe"},
		{Name: "Adam"},
		{Name: "mary"},
	}

	out := Sort(records, model.SortSpec{Key: "name", Direction: model.SortAsc}, CandidateValue)
	assert.Equal(t, "Adam", out[0].Name)
	assert.Equal(t, "mary", out[1].Name)
	assert.Equal(t, "zoe", out[2].Name)
}

func TestSort_DescIsReversedAsc(t *testing.T) {
	t.Parallel()

	// All jobMatch values in the sample set are distinct
	records := sampleCandidates()

	asc := Sort(records, model.SortSpec{Key: "jobMatch", Direction: model.SortAsc}, CandidateValue)
	desc := Sort(records, model.SortSpec{Key: "jobMatch", Direction: model.SortDesc}, CandidateValue)

	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := sampleCandidates()
	Sort(records, model.SortSpec{Key: "name", Direction: model.SortAsc}, CandidateValue)
	assert.Equal(t, sampleCandidates(), records)
}

func TestSort_InvitationsByTimestamp(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []model.Invitation{
		{Email: "b@x.com", SentAt: base.Add(2 * time.Hour)},
		{Email: "a@x.com", SentAt: base},
		{Email: "c@x.com", SentAt: base.Add(time.Hour)},
	}

	out := Sort(records, model.SortSpec{Key: "sentAt", Direction: model.SortAsc}, InvitationValue)
	assert.Equal(t, "a@x.com", out[0].Email)
	assert.Equal(t, "c@x.com", out[1].Email)
	assert.Equal(t, "b@x.com", out[2].Email)
}

func TestSort_UnparseableNumericDefaultsToZero(t *testing.T) {
	t.Parallel()

	value := func(s string, _ string) string { return s }
	out := Sort([]string{"3", "not-a-number", "1"}, model.SortSpec{Key: "cgpa", Direction: model.SortAsc}, value)
	assert.Equal(t, []string{"not-a-number", "1", "3"}, out)
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5, 6, 7}

	page, meta := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, page)
	assert.Equal(t, model.Pagination{Page: 2, PerPage: 3, Total: 7, TotalPages: 3}, meta)

	page, _ = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, page)

	page, _ = Paginate(items, 9, 3)
	assert.Empty(t, page)

	page, meta = Paginate(items, 0, 0)
	assert.Equal(t, items, page)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, DefaultPerPage, meta.PerPage)
}
