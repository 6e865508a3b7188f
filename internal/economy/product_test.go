package economy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReferenceValidation(t *testing.T) {
	ref, err := NewReference(180000)
	require.NoError(t, err)
	require.Equal(t, 180000.0, ref.Price)

	_, err = NewReference(0)
	require.ErrorIs(t, err, ErrInvalidMarketPrice)

	_, err = NewReference(-1)
	require.ErrorIs(t, err, ErrInvalidMarketPrice)
}

func TestProductReference(t *testing.T) {
	p := Product{Name: "Alphonso Mangoes", Grade: GradeA, BasePrice: 1000}
	ref, err := p.Reference()
	require.NoError(t, err)
	require.Equal(t, 1000.0, ref.Price)

	p.BasePrice = 0
	_, err = p.Reference()
	require.ErrorIs(t, err, ErrInvalidMarketPrice)
}

func TestFairValueGradeOrdering(t *testing.T) {
	base := Product{Name: "Alphonso Mangoes", BasePrice: 1000}

	export := base
	export.Grade = GradeExport
	gradeA := base
	gradeA.Grade = GradeA
	gradeB := base
	gradeB.Grade = GradeB

	require.Greater(t, export.FairValue(), base.BasePrice)
	require.Less(t, gradeA.FairValue(), export.FairValue())
	require.Less(t, gradeB.FairValue(), gradeA.FairValue())

	// Unknown grades fall back to the market reference.
	require.Equal(t, base.BasePrice, base.FairValue())
}
