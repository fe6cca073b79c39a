package instance_test

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmelineperneel/UJSSP/instance"
)

func TestRead_Jobs(t *testing.T) {
	src := "3\n100\t10\t0.5\n\n200 20 0.25\n 50   5   0.9 \n"
	in, err := instance.Read(strings.NewReader(src), instance.Additive)
	require.NoError(t, err)
	require.Equal(t, 3, in.Len())

	want := []instance.Job{
		{ID: 0, Revenue: 100, Cost: 10, Prob: 0.5},
		{ID: 1, Revenue: 200, Cost: 20, Prob: 0.25},
		{ID: 2, Revenue: 50, Cost: 5, Prob: 0.9},
	}
	if diff := cmp.Diff(want, in.Jobs); diff != "" {
		t.Fatalf("jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_Factors(t *testing.T) {
	in, err := instance.Read(strings.NewReader("3\n4\n9\n25\n"), instance.Multiplicative)
	require.NoError(t, err)
	assert.Equal(t, instance.Multiplicative, in.Mode)
	assert.Equal(t, 0, in.Product().Cmp(big.NewInt(900)))
	assert.Equal(t, 2, in.Factors[2].ID)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		mode instance.Mode
		want error
	}{
		{"empty", "", instance.Additive, instance.ErrMalformed},
		{"bad header", "x\n", instance.Additive, instance.ErrMalformed},
		{"negative header", "-1\n", instance.Additive, instance.ErrMalformed},
		{"too few", "2\n100 10 0.5\n", instance.Additive, instance.ErrCount},
		{"too many", "1\n4\n9\n", instance.Multiplicative, instance.ErrCount},
		{"short line", "1\n100 10\n", instance.Additive, instance.ErrMalformed},
		{"bad prob", "1\n100 10 half\n", instance.Additive, instance.ErrMalformed},
		{"prob zero", "1\n100 10 0\n", instance.Additive, instance.ErrInvalidItem},
		{"prob above one", "1\n100 10 1.5\n", instance.Additive, instance.ErrInvalidItem},
		{"negative cost", "1\n100 -1 0.5\n", instance.Additive, instance.ErrInvalidItem},
		{"zero factor", "1\n0\n", instance.Multiplicative, instance.ErrInvalidItem},
		{"float factor", "1\n2.5\n", instance.Multiplicative, instance.ErrMalformed},
		{"unknown mode", "0\n", instance.Mode(9), instance.ErrUnsupportedMode},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instance.Read(strings.NewReader(tc.src), tc.mode)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRead_EmptyInstance(t *testing.T) {
	in, err := instance.Read(strings.NewReader("0\n"), instance.Additive)
	require.NoError(t, err)
	assert.Equal(t, 0, in.Len())
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, in := range []*instance.Instance{
		instance.NewJobs(
			instance.Job{Revenue: 100, Cost: 10, Prob: 0.5},
			instance.Job{Revenue: 321, Cost: 7, Prob: 0.123456789},
		),
		instance.NewFactors(2, 3, 6),
	} {
		var buf bytes.Buffer
		require.NoError(t, instance.Write(&buf, in))
		back, err := instance.Read(&buf, in.Mode)
		require.NoError(t, err)
		assert.Equal(t, in, back)
	}
}

func TestValidate_ModeMismatch(t *testing.T) {
	in := instance.NewFactors(2)
	in.Jobs = []instance.Job{{Revenue: 1, Prob: 0.5}}
	assert.ErrorIs(t, in.Validate(), instance.ErrInvalidItem)
}

func TestParseMode(t *testing.T) {
	m, err := instance.ParseMode("Factors")
	require.NoError(t, err)
	assert.Equal(t, instance.Multiplicative, m)

	_, err = instance.ParseMode("boolean")
	assert.ErrorIs(t, err, instance.ErrUnsupportedMode)

	var got instance.Mode
	require.NoError(t, got.UnmarshalText([]byte("additive")))
	assert.Equal(t, instance.Additive, got)
	b, err := instance.Multiplicative.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "multiplicative", string(b))
}

func ids(in *instance.Instance) []int {
	var out []int
	for _, j := range in.Jobs {
		out = append(out, j.ID)
	}
	for _, f := range in.Factors {
		out = append(out, f.ID)
	}
	return out
}

func TestSort_Jobs(t *testing.T) {
	in := instance.NewJobs(
		instance.Job{Revenue: 100, Cost: 1, Prob: 0.5}, // ratio 100
		instance.Job{Revenue: 100, Cost: 1, Prob: 0.8}, // ratio 400
		instance.Job{Revenue: 300, Cost: 1, Prob: 0.5}, // ratio 300
		instance.Job{Revenue: 100, Cost: 1, Prob: 0.5}, // ratio 100, after job 0
	)

	got, err := instance.Sort(in, instance.OrderDefault, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, ids(got))
	assert.Equal(t, []int{0, 1, 2, 3}, ids(in), "input untouched")

	got, err = instance.Sort(in, instance.OrderAscending, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 2, 1}, ids(got))
}

func TestSort_Factors(t *testing.T) {
	in := instance.NewFactors(25, 4, 9)

	got, err := instance.Sort(in, instance.OrderDefault, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0}, ids(got))

	got, err = instance.Sort(in, instance.OrderDescending, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 1}, ids(got))

	_, err = instance.Sort(in, instance.OrderRatio, 0)
	assert.ErrorIs(t, err, instance.ErrUnsupportedMode)
}

func TestSort_RandomIsSeeded(t *testing.T) {
	in := instance.NewFactors(1, 2, 3, 4, 5, 6, 7, 8, 9, 10)
	a, err := instance.Sort(in, instance.OrderRandom, 42)
	require.NoError(t, err)
	b, err := instance.Sort(in, instance.OrderRandom, 42)
	require.NoError(t, err)
	assert.Equal(t, ids(a), ids(b))
	assert.ElementsMatch(t, ids(in), ids(a))

	zero, err := instance.Sort(in, instance.OrderRandom, 0)
	require.NoError(t, err)
	one, err := instance.Sort(in, instance.OrderRandom, 1)
	require.NoError(t, err)
	assert.Equal(t, ids(one), ids(zero), "seed 0 means the default seed")
}

func TestParseOrder(t *testing.T) {
	for s, want := range map[string]instance.Order{
		"":     instance.OrderDefault,
		"asc":  instance.OrderAscending,
		"DESC": instance.OrderDescending,
		"ratio": instance.OrderRatio,
		"random": instance.OrderRandom,
	} {
		got, err := instance.ParseOrder(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	_, err := instance.ParseOrder("sideways")
	assert.Error(t, err)
	assert.Equal(t, "descending", instance.OrderDescending.String())
}
