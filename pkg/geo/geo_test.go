package geo

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// A small field north-west of Fresno.
var fresno = Bounds{North: 36.7508, South: 36.7488, East: -119.7130, West: -119.7178}

// --- Point tests ---

func TestHaversineOneDegreeLatitude(t *testing.T) {
	got := HaversineFeet(LonLat{0, 0}, LonLat{0, 1})
	want := EarthRadiusFeet * math.Pi / 180
	if !approxEqual(got, want, 1) {
		t.Errorf("HaversineFeet = %v, want %v", got, want)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a, b := LonLat{-119.7, 36.7}, LonLat{-119.8, 36.9}
	if !approxEqual(HaversineFeet(a, b), HaversineFeet(b, a), 1e-6) {
		t.Error("distance should not depend on direction")
	}
	if HaversineFeet(a, a) != 0 {
		t.Error("distance to self should be 0")
	}
}

func TestPointDistance(t *testing.T) {
	if !approxEqual(Pt(0, 0).Distance(Pt(3, 4)), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", Pt(0, 0).Distance(Pt(3, 4)))
	}
}

// --- Footprint tests ---

func TestFootprintSquare(t *testing.T) {
	sq := Footprint{Pt(0, 0), Pt(660, 0), Pt(660, 660), Pt(0, 660)}
	if !approxEqual(sq.SquareFeet(), 435600, tolerance) {
		t.Errorf("SquareFeet = %f, want 435600", sq.SquareFeet())
	}
	if !approxEqual(sq.Acres(), 10, 1e-9) {
		t.Errorf("Acres = %f, want 10", sq.Acres())
	}
	if !sq.CounterClockwise() {
		t.Error("expected counterclockwise winding")
	}
	if !approxEqual(sq.PerimeterFeet(), 2640, tolerance) {
		t.Errorf("PerimeterFeet = %f, want 2640", sq.PerimeterFeet())
	}

	cw := Footprint{Pt(0, 0), Pt(0, 660), Pt(660, 660), Pt(660, 0)}
	if cw.CounterClockwise() || cw.SquareFeet() != sq.SquareFeet() {
		t.Error("reversed winding should flip orientation but keep the area")
	}
}

func TestFootprintDegenerate(t *testing.T) {
	line := Footprint{Pt(0, 0), Pt(100, 0)}
	if line.SquareFeet() != 0 {
		t.Errorf("two corners should enclose nothing, got %f", line.SquareFeet())
	}
	if Footprint(nil).PerimeterFeet() != 0 {
		t.Error("empty footprint should have no perimeter")
	}
}

func TestProjectRingDropsClosingPosition(t *testing.T) {
	f := ProjectRing(fresno.Ring(), fresno.Center())
	if len(f) != 4 {
		t.Fatalf("expected 4 corners, got %d", len(f))
	}
	open := ProjectRing(fresno.Ring()[:4], fresno.Center())
	if !approxEqual(open.SquareFeet(), f.SquareFeet(), 1e-6) {
		t.Error("an open ring should project to the same footprint")
	}
}

// --- Bounds tests ---

func TestBoundsValidate(t *testing.T) {
	if err := fresno.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := []Bounds{
		{North: 36.7, South: 36.8, East: -119.7, West: -119.8},
		{North: 36.8, South: 36.7, East: -119.8, West: -119.7},
		{North: 91, South: 36.7, East: -119.7, West: -119.8},
		{North: math.NaN(), South: 36.7, East: -119.7, West: -119.8},
	}
	for _, b := range bad {
		if err := b.Validate(); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidBounds", b, err)
		}
	}
}

func TestBoundsRingClosedCCW(t *testing.T) {
	ring := fresno.Ring()
	if len(ring) != 5 {
		t.Fatalf("expected 5 positions, got %d", len(ring))
	}
	if ring[0] != ring[4] {
		t.Error("ring should be closed")
	}
	if !fresno.Footprint().CounterClockwise() {
		t.Error("exterior ring should be counterclockwise")
	}
}

func TestBoundsDimensions(t *testing.T) {
	length := fresno.LengthFeet()
	wantLength := EarthRadiusFeet * 0.002 * math.Pi / 180
	if !approxEqual(length, wantLength, 0.5) {
		t.Errorf("LengthFeet = %v, want %v", length, wantLength)
	}

	width := fresno.WidthFeet()
	wantWidth := EarthRadiusFeet * 0.0048 * math.Pi / 180 * math.Cos(36.7498*math.Pi/180)
	if math.Abs(width-wantWidth)/wantWidth > 0.001 {
		t.Errorf("WidthFeet = %v, want ~%v", width, wantWidth)
	}

	acres := fresno.Acres()
	wantAcres := width * length / 43560
	if math.Abs(acres-wantAcres)/wantAcres > 0.005 {
		t.Errorf("Acres = %v, want ~%v", acres, wantAcres)
	}

	fence := fresno.Footprint().PerimeterFeet()
	if math.Abs(fence-2*(width+length))/fence > 0.005 {
		t.Errorf("PerimeterFeet = %v, want ~%v", fence, 2*(width+length))
	}
}

func TestFeatureCollectionJSON(t *testing.T) {
	fc := fresno.FeatureCollection("field")
	text := fc.String()
	if !strings.Contains(text, `"type":"FeatureCollection"`) {
		t.Errorf("missing collection type: %s", text)
	}

	var decoded struct {
		Features []struct {
			Geometry struct {
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatal(err)
	}
	first := decoded.Features[0].Geometry.Coordinates[0][0]
	if first != [2]float64{-119.7178, 36.7488} {
		t.Errorf("first position = %v, want [lon lat] of the south-west corner", first)
	}
}

func TestFeatureCollectionWinding(t *testing.T) {
	inverted := Bounds{North: fresno.South, South: fresno.North, East: fresno.East, West: fresno.West}
	for _, b := range []Bounds{fresno, inverted} {
		ring := b.FeatureCollection("field").Features[0].Geometry.Coordinates[0]
		if !ProjectRing(ring, b.Center()).CounterClockwise() {
			t.Errorf("ring for %+v is clockwise: %v", b, ring)
		}
		if ring[0] != ring[len(ring)-1] {
			t.Errorf("ring for %+v is not closed", b)
		}
	}
}
