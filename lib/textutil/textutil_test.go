package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanFilename(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{"Barry Moore", "Barry_Moore"},
		{"Wm. Lacy Clay, Jr.", "Wm_Lacy_Clay_Jr"},
		{"Debbie Wasserman Schultz (FL)", "Debbie_Wasserman_Schultz_FL"},
		{"  Raúl Grijalva ", "Ral_Grijalva"},
		{"A.  Donald   McEachin", "A_Donald_McEachin"},
	}
	for _, test := range cases {
		out := CleanFilename(test.in)
		require.Equal(t, test.expect, out)
		// applying it again must not change anything further
		require.Equal(t, out, CleanFilename(out))
	}
}

func TestSafeName(t *testing.T) {
	require.Equal(t, "tommy_tuberville", SafeName("Tommy Tuberville"))
	require.Equal(t, "wm__lacy_clay__jr_", SafeName("Wm. Lacy Clay, Jr."))
	require.Equal(t, "hr_1968", SafeName("HR 1968"))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "barry moore", NormalizeName("  Barry   Moore\n"))
}

func TestZeroPad(t *testing.T) {
	require.Equal(t, "000042", ZeroPad(42, 6))
	require.Equal(t, "0007", ZeroPad(7, 4))
	require.Equal(t, "12345", ZeroPad(12345, 4))
}
