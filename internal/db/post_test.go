package db

import (
	"reflect"
	"testing"
)

func TestPostHashtagList(t *testing.T) {
	tests := []struct {
		name     string
		hashtags string
		want     []string
	}{
		{
			name:     "space separated",
			hashtags: "#AI #Tech #Growth",
			want:     []string{"#AI", "#Tech", "#Growth"},
		},
		{
			name:     "comma separated",
			hashtags: "#AI,#Tech, #Growth",
			want:     []string{"#AI", "#Tech", "#Growth"},
		},
		{
			name:     "drops bare words",
			hashtags: "Sure! #Tech rocks #Growth",
			want:     []string{"#Tech", "#Growth"},
		},
		{
			name:     "empty",
			hashtags: "",
			want:     []string{},
		},
		{
			name:     "lone hash dropped",
			hashtags: "# #Valid",
			want:     []string{"#Valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Post{Hashtags: tt.hashtags}.HashtagList()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
