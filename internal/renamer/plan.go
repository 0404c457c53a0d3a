package renamer

import (
	"fmt"
	"path/filepath"

	"subrename/internal/media"
	"subrename/internal/signature"
)

// Status describes what happened, or will happen, to one subtitle.
type Status string

const (
	// StatusPending is a planned rename that has not been executed yet.
	StatusPending Status = "pending"
	// StatusRenamed means the subtitle now carries the movie's base name.
	StatusRenamed Status = "renamed"
	// StatusPlanned is a rename a dry run would have performed.
	StatusPlanned Status = "planned"
	// StatusSkipped means the subtitle already had the target name.
	StatusSkipped Status = "skipped"
	// StatusConflict means the target name is taken.
	StatusConflict Status = "conflict"
)

// Action pairs one movie with the subtitle chosen for it.
type Action struct {
	Movie     media.File
	Subtitle  media.File
	Target    string
	Signature signature.Signature
	Status    Status
	Reason    string
}

// Plan is the outcome of pairing a directory listing.
type Plan struct {
	Actions            []Action
	UnmatchedMovies    []media.File
	UnmatchedSubtitles []media.File
}

type subtitleCandidate struct {
	file    media.File
	sig     signature.Signature
	ok      bool
	claimed bool
}

// BuildPlan pairs every movie with the first unclaimed subtitle whose
// signature matches under the matcher's policy. Only base names are compared,
// so directory components never contribute markers. exists reports whether a
// path is already taken on disk; it may be nil when the caller does not care.
func BuildPlan(listing media.Listing, matcher signature.Matcher, overwrite bool, exists func(string) bool) Plan {
	candidates := make([]*subtitleCandidate, len(listing.Subtitles))
	for i, sub := range listing.Subtitles {
		sig, ok := signature.Extract(sub.Name())
		candidates[i] = &subtitleCandidate{file: sub, sig: sig, ok: ok}
	}

	var plan Plan
	// claimedTargets maps a target path to the subtitle that will occupy it.
	claimedTargets := make(map[string]string)

	for _, movie := range listing.Movies {
		movieSig, ok := signature.Extract(movie.Name())
		if !ok {
			plan.UnmatchedMovies = append(plan.UnmatchedMovies, movie)
			continue
		}

		var chosen *subtitleCandidate
		for _, c := range candidates {
			if c.claimed || !c.ok {
				continue
			}
			if matcher.Equal(movieSig, c.sig) {
				chosen = c
				break
			}
		}
		if chosen == nil {
			plan.UnmatchedMovies = append(plan.UnmatchedMovies, movie)
			continue
		}
		chosen.claimed = true

		action := Action{
			Movie:     movie,
			Subtitle:  chosen.file,
			Target:    filepath.Join(filepath.Dir(movie.Path), movie.Stem()+chosen.file.Ext()),
			Signature: movieSig,
			Status:    StatusPending,
		}

		switch owner, taken := claimedTargets[action.Target]; {
		case action.Target == chosen.file.Path:
			action.Status = StatusSkipped
			action.Reason = "already named after movie"
		case taken:
			action.Status = StatusConflict
			action.Reason = fmt.Sprintf("target already claimed by %s", filepath.Base(owner))
		case !overwrite && exists != nil && exists(action.Target):
			action.Status = StatusConflict
			action.Reason = "target file already exists"
		}
		if action.Status != StatusConflict {
			claimedTargets[action.Target] = chosen.file.Path
		}
		plan.Actions = append(plan.Actions, action)
	}

	for _, c := range candidates {
		if !c.claimed {
			plan.UnmatchedSubtitles = append(plan.UnmatchedSubtitles, c.file)
		}
	}
	return plan
}
