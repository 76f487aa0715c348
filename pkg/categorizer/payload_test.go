package categorizer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semcat/internal/models"
)

func TestSimilarities_KeepDocumentOrder(t *testing.T) {
	var seg Segment
	require.NoError(t, json.Unmarshal([]byte(`{"category_similarities":{"Zeta":0.4,"Alpha":0.9,"Mid":null,"Str":"x","Neg":-0.2,"Big":1.7}}`), &seg))

	assert.Equal(t, Similarities{
		{Category: "Zeta", Score: 0.4},
		{Category: "Alpha", Score: 0.9},
		{Category: "Mid", Score: 0.5},
		{Category: "Str", Score: 0.5},
		{Category: "Neg", Score: 0},
		{Category: "Big", Score: 1},
	}, seg.CategorySimilarities)
}

func TestSimilarities_NullAndInvalid(t *testing.T) {
	var seg Segment
	require.NoError(t, json.Unmarshal([]byte(`{"category_similarities":null}`), &seg))
	assert.Nil(t, seg.CategorySimilarities)

	err := json.Unmarshal([]byte(`{"category_similarities":[1,2]}`), &seg)
	assert.Error(t, err)
}

func TestAnalyzeResponse_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"Success", `{"status":"success","results":{"response":{"segments":[]}}}`, false},
		{"Error status", `{"status":"error","results":{"response":{}}}`, true},
		{"Missing status", `{"results":{"response":{}}}`, true},
		{"Missing results", `{"status":"success"}`, true},
		{"Missing response", `{"status":"success","results":{}}`, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var resp AnalyzeResponse
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &resp))
			_, err := resp.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrContractViolation))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilResp *AnalyzeResponse
	_, err := nilResp.Validate()
	assert.ErrorIs(t, err, models.ErrContractViolation)
}

func TestSegmentAccessors(t *testing.T) {
	assert.Equal(t, "", Segment{}.DetailText())
	assert.Equal(t, "a", Segment{CovariantDetails: []CovariantDetail{{Text: "a"}, {Text: "b"}}}.DetailText())
	assert.Equal(t, "", ResponseBody{}.Compressed())
	assert.Equal(t, "c", ResponseBody{Texts: &ResponseText{Compressed: "c"}}.Compressed())
}
