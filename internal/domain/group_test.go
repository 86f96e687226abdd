package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int          { return &v }
func genderPtr(g Gender) *Gender { return &g }

func TestGroupAcceptsAgeBoundsInclusive(t *testing.T) {
	g := Group{MinimumAgeDays: 2000, MaximumAgeDays: intPtr(4000)}
	ref := date(2024, time.September, 1)

	tests := []struct {
		name  string
		birth time.Time
		want  bool
	}{
		{"exactly minimum age", ref.AddDate(0, 0, -2000), true},
		{"exactly maximum age", ref.AddDate(0, 0, -4000), true},
		{"one day too young", ref.AddDate(0, 0, -1999), false},
		{"one day too old", ref.AddDate(0, 0, -4001), false},
		{"in the middle", ref.AddDate(0, 0, -3000), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, g.AcceptsBirthDateAndGender(tt.birth, GenderM, ref))
		})
	}
}

func TestGroupWithoutMaximumHasNoUpperBound(t *testing.T) {
	g := Group{MinimumAgeDays: 6570} // 18 years, leiding
	ref := date(2024, time.September, 1)
	require.True(t, g.AcceptsBirthDateAndGender(date(1960, time.January, 1), GenderF, ref))
	require.False(t, g.AcceptsBirthDateAndGender(date(2010, time.January, 1), GenderF, ref))
}

func TestGroupGenderRestriction(t *testing.T) {
	ref := date(2024, time.September, 1)
	birth := ref.AddDate(0, 0, -3000)

	open := Group{MinimumAgeDays: 0}
	girls := Group{MinimumAgeDays: 0, Gender: genderPtr(GenderF)}

	// No restriction: open to every gender value.
	require.True(t, open.AcceptsBirthDateAndGender(birth, GenderM, ref))
	require.True(t, open.AcceptsBirthDateAndGender(birth, GenderF, ref))
	require.True(t, open.AcceptsBirthDateAndGender(birth, GenderX, ref))

	// Single-gender group: excludes the other binary gender, accepts X.
	require.False(t, girls.AcceptsBirthDateAndGender(birth, GenderM, ref))
	require.True(t, girls.AcceptsBirthDateAndGender(birth, GenderF, ref))
	require.True(t, girls.AcceptsBirthDateAndGender(birth, GenderX, ref))
}

func TestGroupAgeComputedOnCalendarDays(t *testing.T) {
	// Time-of-day must not shift the computed age.
	g := Group{MinimumAgeDays: 10, MaximumAgeDays: intPtr(10)}
	birth := time.Date(2024, time.May, 1, 23, 30, 0, 0, time.UTC)
	ref := time.Date(2024, time.May, 11, 0, 5, 0, 0, time.UTC)
	require.True(t, g.AcceptsBirthDateAndGender(birth, GenderX, ref))
}

func TestCreateGroupInputValidation(t *testing.T) {
	valid := CreateGroupInput{Name: "Ribbels", MinimumAgeDays: 2000, MaximumAgeDays: intPtr(2900), Active: true}
	require.NoError(t, valid.Validate())

	require.Error(t, CreateGroupInput{Name: "", MinimumAgeDays: 100}.Validate())
	require.Error(t, CreateGroupInput{Name: "Ribbels", MinimumAgeDays: -1}.Validate())
	require.Error(t, CreateGroupInput{Name: "Ribbels", Gender: genderPtr(Gender("Q"))}.Validate())
}
