package scoring

import (
	"testing"

	"github.com/ternarybob/aestimo/internal/models"
)

func TestCompositeScore(t *testing.T) {
	r := ComputeRatios(baselineSnapshot())
	z := ZScore(r)
	total, b := CompositeScore(r, z)

	// clamp(42.95,0,40)=40; min(7.5*2,25)=15; max(20-0.75*5,0)=16.25;
	// clamp(8,0,15)=8; total 79.25
	if !approx(b.ZScorePoints, 40) {
		t.Errorf("ZScorePoints = %v, want 40", b.ZScorePoints)
	}
	if !approx(b.CoveragePoints, 15) {
		t.Errorf("CoveragePoints = %v, want 15", b.CoveragePoints)
	}
	if !approx(b.LeveragePoints, 16.25) {
		t.Errorf("LeveragePoints = %v, want 16.25", b.LeveragePoints)
	}
	if !approx(b.ProfitabilityPoints, 8) {
		t.Errorf("ProfitabilityPoints = %v, want 8", b.ProfitabilityPoints)
	}
	if !approx(total, 79.25) {
		t.Errorf("CompositeScore = %v, want 79.25", total)
	}
}

func TestCompositeScoreSentinelAsymmetry(t *testing.T) {
	// Undefined interest coverage reads as no interest burden and earns
	// the full 25 points; undefined debt-to-equity reads as zero equity
	// and earns nothing.
	r := models.RatioSet{
		InterestCoverage: models.UndefinedRatio(),
		DebtToEquity:     models.UndefinedRatio(),
	}
	_, b := CompositeScore(r, 0)

	if b.CoveragePoints != 25 {
		t.Errorf("CoveragePoints = %v, want exactly 25", b.CoveragePoints)
	}
	if b.LeveragePoints != 0 {
		t.Errorf("LeveragePoints = %v, want exactly 0", b.LeveragePoints)
	}
}

func TestCompositeScoreComponentFloors(t *testing.T) {
	// Negative inputs never subtract from the composite: every component
	// floors at zero.
	r := models.RatioSet{
		InterestCoverage: models.FiniteRatio(-5), // negative EBIT
		DebtToEquity:     models.FiniteRatio(9),  // 20-45 < 0
		ReturnOnAssets:   -0.5,
	}
	total, b := CompositeScore(r, -3)

	if b.ZScorePoints != 0 || b.CoveragePoints != 0 || b.LeveragePoints != 0 || b.ProfitabilityPoints != 0 {
		t.Errorf("breakdown = %+v, want all components 0", b)
	}
	if total != 0 {
		t.Errorf("CompositeScore = %v, want 0", total)
	}
}

func TestCompositeScoreCeiling(t *testing.T) {
	// A perfect company earns every component cap and lands exactly on 100.
	r := models.RatioSet{
		InterestCoverage: models.FiniteRatio(100),
		DebtToEquity:     models.FiniteRatio(0),
		ReturnOnAssets:   0.5,
	}
	total, _ := CompositeScore(r, 10)
	if total != 100 {
		t.Errorf("CompositeScore = %v, want 100", total)
	}
}

func TestCompositeScoreBounds(t *testing.T) {
	// No combination of inputs may push the score outside [0,100].
	values := []float64{-1e9, -100, -1, -0.01, 0, 0.01, 1, 100, 1e9}
	for _, ic := range values {
		for _, de := range values {
			for _, roa := range values {
				for _, z := range values {
					r := models.RatioSet{
						InterestCoverage: models.FiniteRatio(ic),
						DebtToEquity:     models.FiniteRatio(de),
						ReturnOnAssets:   roa,
					}
					total, _ := CompositeScore(r, z)
					if total < 0 || total > 100 {
						t.Fatalf("CompositeScore(ic=%v de=%v roa=%v z=%v) = %v, outside [0,100]",
							ic, de, roa, z, total)
					}
				}
			}
		}
	}
}

func TestCompositeScoreDegenerate(t *testing.T) {
	// All-zero snapshot (interest expense defaulted to 1): every asset
	// ratio 0, both leverage ratios undefined, coverage 0/1 = finite 0.
	// The undefined equity-to-debt takes the cap, so Z = 0.6*10 = 6 and
	// only the z component scores: clamp(60,0,40) = 40.
	s := models.NewFinancialSnapshot(models.SnapshotInput{Ticker: "NIL"})
	r := ComputeRatios(s)
	z := ZScore(r)
	total, b := CompositeScore(r, z)

	if !approx(z, 6.0) {
		t.Errorf("ZScore = %v, want 6.0", z)
	}
	if v, _ := r.InterestCoverage.Value(); !r.InterestCoverage.Defined() || v != 0 {
		t.Errorf("InterestCoverage = %v, want finite 0", r.InterestCoverage)
	}
	if b.ZScorePoints != 40 || b.CoveragePoints != 0 || b.LeveragePoints != 0 || b.ProfitabilityPoints != 0 {
		t.Errorf("breakdown = %+v, want {40 0 0 0}", b)
	}
	if !approx(total, 40) {
		t.Errorf("CompositeScore = %v, want 40", total)
	}
}
