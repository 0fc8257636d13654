package ddl

import (
	"strings"
	"testing"
)

func BenchmarkParseRecord(b *testing.B) {
	objects := strings.Repeat(`[31, point(146,392), [#InnerRadius:50, #HillType: #BigHill]], `, 40)
	mapText := `[#MapId: 1, #objects: [` + objects + `[6, point(120, 350), [#Show:1]]], #MapImage: "30b001v0", #Topology: "30t001v0"]`
	cases := []struct {
		name string
		text string
	}{
		{"part", partText},
		{"map", mapText},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.SetBytes(int64(len(tc.text)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := ParseRecord(tc.text); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
