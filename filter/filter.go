// Package filter narrows the school list by state, regional and subject.
package filter

import (
	"sort"

	"escolas-map/models"
)

// States returns the sorted distinct state codes
func States(schools []models.School) []string {
	return distinct(schools, func(s models.School) string { return s.UF })
}

// Regionals returns the sorted distinct regionals of the given state.
// For models.AllStates every regional in the data set is returned.
func Regionals(schools []models.School, state string) []string {
	if state == models.AllStates {
		return distinct(schools, func(s models.School) string { return s.Regional })
	}
	return distinct(byState(schools, state), func(s models.School) string { return s.Regional })
}

// Options builds the dropdown contents for the current selection
func Options(schools []models.School, f models.Filter) models.FilterOptions {
	subjects := make([]string, len(models.Subjects))
	for i, s := range models.Subjects {
		subjects[i] = s.Label
	}
	return models.FilterOptions{
		States:    append([]string{models.AllStates}, States(schools)...),
		Regionals: append([]string{models.AllRegionals}, Regionals(schools, f.State)...),
		Subjects:  subjects,
	}
}

// Normalize replaces selections that are not valid for the data set.
// A regional that does not belong to the selected state falls back to models.AllRegionals.
func Normalize(schools []models.School, f models.Filter) models.Filter {
	out := f
	if out.State == "" || !contains(States(schools), out.State) {
		out.State = models.AllStates
	}
	if out.Regional == "" || !contains(Regionals(schools, out.State), out.Regional) {
		out.Regional = models.AllRegionals
	}
	if _, ok := models.SubjectByLabel(out.Subject); !ok {
		out.Subject = models.DefaultSubject().Label
	}
	return out
}

// Apply returns the schools matching the state and regional selection.
// The subject does not narrow rows; it only picks the score used for coloring.
func Apply(schools []models.School, f models.Filter) []models.School {
	out := make([]models.School, 0, len(schools))
	for _, s := range schools {
		if f.State != models.AllStates && s.UF != f.State {
			continue
		}
		if f.Regional != models.AllRegionals && s.Regional != f.Regional {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Center is the arithmetic mean of the coordinates of the given schools.
// ok is false for an empty list.
func Center(schools []models.School) (lat, lon float64, ok bool) {
	if len(schools) == 0 {
		return 0, 0, false
	}
	for _, s := range schools {
		lat += s.Latitude
		lon += s.Longitude
	}
	n := float64(len(schools))
	return lat / n, lon / n, true
}

// SubjectAverages returns the mean of every subject score, in models.Subjects order.
// An empty list yields an empty result.
func SubjectAverages(schools []models.School) []Average {
	if len(schools) == 0 {
		return nil
	}
	out := make([]Average, len(models.Subjects))
	for i, subj := range models.Subjects {
		sum := 0.0
		for _, s := range schools {
			v, _ := s.Score(subj.Column)
			sum += v
		}
		out[i] = Average{Subject: subj, Mean: sum / float64(len(schools))}
	}
	return out
}

// Average is the mean score of one subject over a set of schools
type Average struct {
	Subject models.Subject `json:"subject"`
	Mean    float64        `json:"mean"`
}

func byState(schools []models.School, state string) []models.School {
	out := make([]models.School, 0)
	for _, s := range schools {
		if s.UF == state {
			out = append(out, s)
		}
	}
	return out
}

func distinct(schools []models.School, key func(models.School) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, s := range schools {
		k := key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, v string) bool {
	i := sort.SearchStrings(list, v)
	return i < len(list) && list[i] == v
}
