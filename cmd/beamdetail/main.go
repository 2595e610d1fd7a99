// BeamDetail turns the parameters of a reinforced concrete beam into a
// dimensioned detail drawing, a bending schedule and shop outputs.
//
// Build:
//
//	go build -o beamdetail ./cmd/beamdetail
//
// Example:
//
//	beamdetail detail --name B1 --beam-span 4000 --formats dxf,pdf,xlsx --out out/
package main

func main() {
	Execute()
}
