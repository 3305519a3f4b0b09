package brackets

import (
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-bracket/models"
)

var (
	ErrEmptyField          = errors.New("empty team or region")
	ErrDuplicateTeam       = errors.New("duplicate team")
	ErrUnexpectedSeed      = errors.New("unexpected seed")
	ErrRegionNotContiguous = errors.New("region not contiguous")
	ErrDuplicateRegion     = errors.New("duplicate region")
	ErrRosterSize          = errors.New("wrong roster size")
)

// ValidationError describes the first rule a roster breaks. Kind is one of the
// Err* sentinels above; Index is the 0-based roster entry.
type ValidationError struct {
	Kind   error
	Index  int
	Name   string
	Region string
	Got    int
	Want   int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrEmptyField:
		return fmt.Sprintf("entry %d: %v", e.Index, e.Kind)
	case ErrDuplicateTeam:
		return fmt.Sprintf("entry %d: %v: %s", e.Index, e.Kind, e.Name)
	case ErrUnexpectedSeed:
		return fmt.Sprintf("entry %d: %v: got %d, want %d", e.Index, e.Kind, e.Got, e.Want)
	case ErrRosterSize:
		return fmt.Sprintf("%v: got %d entries, want %d", e.Kind, e.Got, e.Want)
	default:
		return fmt.Sprintf("entry %d: %v: %s", e.Index, e.Kind, e.Region)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// AsValidationError attempts to unwrap an error into a ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

// ValidateRoster checks the structural rules of a tournament field in one pass:
// no empty fields, unique team names, seeds 1..16 in order within each region,
// contiguous and unique regions, and exactly RosterSize entries.
func ValidateRoster(roster models.Roster) error {
	seenTeams := make(map[string]struct{}, len(roster))
	seenRegions := make(map[string]struct{}, models.RegionCount)
	expectedSeed := 1
	currentRegion := ""

	for i, team := range roster {
		if team.Name == "" || team.Region == "" {
			return &ValidationError{Kind: ErrEmptyField, Index: i}
		}

		if _, dup := seenTeams[team.Name]; dup {
			return &ValidationError{Kind: ErrDuplicateTeam, Index: i, Name: team.Name}
		}
		seenTeams[team.Name] = struct{}{}

		if team.Seed != expectedSeed {
			return &ValidationError{Kind: ErrUnexpectedSeed, Index: i, Name: team.Name, Got: team.Seed, Want: expectedSeed}
		}

		if expectedSeed == 1 {
			if i > 0 && team.Region == currentRegion {
				return &ValidationError{Kind: ErrRegionNotContiguous, Index: i, Name: team.Name, Region: team.Region}
			}
			if _, dup := seenRegions[team.Region]; dup {
				return &ValidationError{Kind: ErrDuplicateRegion, Index: i, Name: team.Name, Region: team.Region}
			}
			seenRegions[team.Region] = struct{}{}
			currentRegion = team.Region
		} else if team.Region != currentRegion {
			return &ValidationError{Kind: ErrRegionNotContiguous, Index: i, Name: team.Name, Region: team.Region}
		}

		if expectedSeed == models.RegionSize {
			expectedSeed = 1
		} else {
			expectedSeed++
		}
	}

	if len(roster) != models.RosterSize {
		return &ValidationError{Kind: ErrRosterSize, Index: len(roster), Got: len(roster), Want: models.RosterSize}
	}
	return nil
}
