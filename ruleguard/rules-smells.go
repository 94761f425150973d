package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards returning the same value can merge with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// determinism keeps the dataset generator reproducible: every value must
// come from the seeded generator state.
func determinism(m dsl.Matcher) {
	m.Import("math/rand/v2")

	m.Match(`time.Now()`).
		Where(m.File().PkgPath.Matches(`/internal/domain/seed$`)).
		Report(`wall-clock time in the generator; derive timestamps from the base time`)

	m.Match(`rand.$f($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/domain/seed$`) &&
			!m["f"].Text.Matches(`^(New|NewPCG)$`)).
		Report(`global PRNG in the generator; draw from the seeded *rand.Rand`)

	m.Match(`gofakeit.$f($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/domain/seed$`) && m["f"].Text != "New").
		Report(`package-level gofakeit source; use the seeded *gofakeit.Faker`)
}

// outputEncoding flags encoders that would HTML-escape dataset text.
func outputEncoding(m dsl.Matcher) {
	m.Match(`json.MarshalIndent($*_)`).
		Where(m.File().PkgPath.Matches(`/internal/domain/(payroll|tool)$`)).
		Report(`MarshalIndent escapes HTML; use an Encoder with SetEscapeHTML(false)`)
}
