package assets

import (
	"fmt"
	"testing"

	"github.com/joshuapare/castkit/internal/format"
)

func BenchmarkLoadBytes(b *testing.B) {
	var src []Source
	for i := range 16 {
		members := make([]fixtureMember, 0, 64)
		for j := range 64 {
			members = append(members, fixtureMember{image: true, name: fmt.Sprintf("img%d", j)})
		}
		members = append(members, fixtureMember{name: "PartsDB", text: partText(i, "p")})
		src = append(src, Source{Name: fmt.Sprintf("%02d.dxr", i), Data: buildArchive(format.Little, members...)})
	}
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, _, err := LoadBytes(src, Options{Workers: workers}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
