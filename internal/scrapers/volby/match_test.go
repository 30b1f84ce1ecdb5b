package volby

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchLocalities(t *testing.T) {
	localities := []Locality{
		{Code: "539198", Name: "Bojanovice"},
		{Code: "500054", Name: "Libčice nad Vltavou"},
		{Code: "500062", Name: "Letky"},
		{Code: "539228", Name: "Líšnice"},
	}

	cases := []struct {
		query    string
		expected string
	}{
		{query: "libcice nad vltavou", expected: "500054"},
		{query: "  LETKY ", expected: "500062"},
		{query: "Lišnice", expected: "539228"},
		{query: "539198", expected: "539198"},
	}

	for _, test := range cases {
		matches := MatchLocalities(localities, test.query, 2)
		require.Len(t, matches, 2)
		require.Equal(t, test.expected, matches[0].Locality.Code, "query %q", test.query)
		require.GreaterOrEqual(t, matches[0].Similarity, matches[1].Similarity)
	}

	require.Len(t, MatchLocalities(localities, "x", 0), len(localities))
	require.Empty(t, MatchLocalities(nil, "x", 3))
}
