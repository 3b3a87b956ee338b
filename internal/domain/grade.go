package domain

// Grade is the ordinal recall-quality score a learner assigns after
// seeing a card's answer: 0 is a complete blackout, 5 is perfect
// recall. The engine works on the full 0-5 scale; the four study
// buttons shown by clients are a presentation mapping onto it.
type Grade int

// Bounds of the grading scale.
const (
	GradeMin Grade = 0
	GradeMax Grade = 5
)

// Grades the four-button study UI maps onto the 0-5 scale.
const (
	GradeAgain Grade = 1
	GradeHard  Grade = 2
	GradeGood  Grade = 4
	GradeEasy  Grade = 5
)

// Policy thresholds on the grading scale.
const (
	// LapseThreshold is the grade below which a review counts as a
	// lapse and resets interval growth.
	LapseThreshold Grade = 3

	// MasteryThreshold is the grade at or above which a card's most
	// recent review counts as mastered.
	MasteryThreshold Grade = 4
)

// GradeBucket is the four-button tally bucket a grade falls into when
// summarizing study activity.
type GradeBucket string

// Possible tally buckets.
const (
	BucketAgain GradeBucket = "again"
	BucketHard  GradeBucket = "hard"
	BucketGood  GradeBucket = "good"
	BucketEasy  GradeBucket = "easy"
)

// Valid reports whether the grade is on the 0-5 scale.
func (g Grade) Valid() bool {
	return g >= GradeMin && g <= GradeMax
}

// IsLapse reports whether the grade counts as a lapse.
func (g Grade) IsLapse() bool {
	return g < LapseThreshold
}

// IsMastery reports whether the grade meets the mastery threshold.
func (g Grade) IsMastery() bool {
	return g >= MasteryThreshold
}

// Bucket maps the grade onto the four-button tally bucket. Grades 0-1
// count as "again", 2-3 as "hard", 4 as "good" and 5 as "easy", so
// clients submitting on the full scale still tally sensibly.
func (g Grade) Bucket() GradeBucket {
	switch {
	case g <= GradeAgain:
		return BucketAgain
	case g < MasteryThreshold:
		return BucketHard
	case g < GradeEasy:
		return BucketGood
	default:
		return BucketEasy
	}
}
