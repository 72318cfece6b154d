package http

import "testing"

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{"first page", 0, 2, []int{0, 1}},
		{"partial last page", 4, 2, []int{4}},
		{"past the end", 9, 2, []int{}},
		{"everything", 0, 50, []int{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, p := paginate(items, tt.offset, tt.limit)
			if p.Total != 5 || p.Offset != tt.offset || p.Limit != tt.limit {
				t.Errorf("unexpected pagination %+v", p)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
