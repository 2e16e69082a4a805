package ledger

import (
	"testing"

	"github.com/Junio-R-org/J-Bank/internal/models"
)

func roster() []models.Participant {
	return []models.Participant{
		{ID: "p1", FirstName: "Mark", LastName: "Volkov"},
		{ID: "p2", FirstName: "Alisa", LastName: "Volkova"},
		{ID: "p3", FirstName: "Ivan", LastName: "Garkusha"},
		{ID: "p4", FirstName: "Nadezhda", LastName: "Baban"},
	}
}

func lastNames(participants []models.Participant) []string {
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.LastName
	}
	return names
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name       string
		filterText string
		want       []string
	}{
		{
			name:       "empty filter returns all sorted by last name",
			filterText: "",
			want:       []string{"Baban", "Garkusha", "Volkov", "Volkova"},
		},
		{
			name:       "case-insensitive last name match",
			filterText: "vol",
			want:       []string{"Volkov", "Volkova"},
		},
		{
			name:       "first name match",
			filterText: "ivan",
			want:       []string{"Garkusha"},
		},
		{
			name:       "full name match spans both parts",
			filterText: "an nad",
			want:       []string{"Baban"},
		},
		{
			name:       "no match yields empty result",
			filterText: "zzz",
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lastNames(Filter(roster(), tt.filterText))
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) = %v, want %v", tt.filterText, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Filter(%q)[%d] = %s, want %s", tt.filterText, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilterStability(t *testing.T) {
	// Equal last names keep insertion order: the sort must be stable.
	participants := []models.Participant{
		{ID: "p1", FirstName: "Mark", LastName: "Volkov"},
		{ID: "p2", FirstName: "Petr", LastName: "Volkov"},
		{ID: "p3", FirstName: "Anna", LastName: "Volkov"},
	}

	got := Filter(participants, "")
	for i, wantID := range []string{"p1", "p2", "p3"} {
		if got[i].ID != wantID {
			t.Errorf("position %d = %s, want %s (insertion order)", i, got[i].ID, wantID)
		}
	}
}

func TestFilterOrdinalOrdering(t *testing.T) {
	// Ordering is case-sensitive ordinal: all uppercase letters sort before
	// lowercase ones.
	participants := []models.Participant{
		{ID: "p1", FirstName: "A", LastName: "abramov"},
		{ID: "p2", FirstName: "B", LastName: "Zubov"},
	}

	got := Filter(participants, "")
	if got[0].LastName != "Zubov" {
		t.Errorf("ordinal ordering: got %v first, want Zubov", got[0].LastName)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	participants := roster()
	Filter(participants, "")

	if participants[0].LastName != "Volkov" {
		t.Error("Filter must not reorder the input slice")
	}
}
