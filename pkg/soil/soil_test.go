package soil

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/basin"
	"github.com/BernyFranklin/CaliforniaWaterInstituteRBC/pkg/geo"
)

const sampleReport = `<?xml version="1.0" encoding="utf-8"?>
<section>
  <title>Component Legend</title>
  <table>
    <tbody>
      <tr class="header"><td><para>Map unit symbol and name</para></td><td><para>Acres</para></td></tr>
      <tr class="mapunit"><td><para>HdA--Hanford sandy loam, 0 to 1 percent slopes</para></td><td><para>12.4</para></td></tr>
      <tr class="component"><td><para>Hanford</para></td><td><para>85</para></td></tr>
      <tr class="mapunit"><td><para>GrA--Greenfield coarse sandy loam, stratified substratum</para></td><td><para>1,204.5</para></td></tr>
      <tr class="mapunit"><td><para>W--Water</para></td><td><para></para></td></tr>
    </tbody>
  </table>
</section>`

var fresno = geo.Bounds{North: 36.7508, South: 36.7488, East: -119.7130, West: -119.7178}

func TestParseReport(t *testing.T) {
	units, err := ParseReport(strings.NewReader(sampleReport))
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 map units, got %d: %+v", len(units), units)
	}

	first := units[0]
	if first.Symbol != "GrA" {
		t.Errorf("largest unit = %q, want GrA", first.Symbol)
	}
	if first.Acres != 1204.5 {
		t.Errorf("acres = %v, want 1204.5", first.Acres)
	}
	if first.Description != "Greenfield coarse sandy loam, stratified substratum" {
		t.Errorf("description = %q", first.Description)
	}
	if units[2].Symbol != "W" || units[2].Acres != 0 {
		t.Errorf("unparseable acreage should read 0, got %+v", units[2])
	}
}

func TestParseReportEmpty(t *testing.T) {
	_, err := ParseReport(strings.NewReader("<section><table><tbody></tbody></table></section>"))
	if !errors.Is(err, ErrNoMapUnits) {
		t.Errorf("expected ErrNoMapUnits, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		desc string
		want basin.SoilType
		ok   bool
	}{
		{"Hanford sandy loam, 0 to 1 percent slopes", basin.SoilLoam, true},
		{"Greenfield coarse sandy loam, stratified substratum", basin.SoilLoamFineLayering, true},
		{"Tujunga loamy sand", basin.SoilLoam, true},
		{"Delhi sand", basin.SoilSand, true},
		{"Dune sand, layered", basin.SoilSandyFineLayering, true},
		{"Fresno silt loam", basin.SoilSiltClayLoam, true},
		{"Merced clay loam, stratified", basin.SoilSiltClayLoamFineLayering, true},
		{"Willows clay", basin.SoilClayRestrictive, true},
		{"Water", basin.SoilLoam, false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, ok := Classify(tt.desc)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Classify(%q) = %s, %v; want %s, %v", tt.desc, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestInfiltrationRateOrdering(t *testing.T) {
	types := basin.SoilTypes()
	for i := 1; i < len(types); i++ {
		if InfiltrationRate(types[i]) >= InfiltrationRate(types[i-1]) {
			t.Errorf("%s should infiltrate slower than %s", types[i], types[i-1])
		}
	}
	if InfiltrationRate(basin.SoilLoam) != 0.6 {
		t.Errorf("loam rate = %v, want 0.6", InfiltrationRate(basin.SoilLoam))
	}
	if InfiltrationRate("bedrock") != 0 {
		t.Error("unknown soil should have rate 0")
	}
}

func TestSuggest(t *testing.T) {
	units := []MapUnit{{Symbol: "DhA", Description: "Delhi sand", Acres: 20}}
	s := Suggest(fresno, units)

	if s.PipelineLength != s.LengthPond {
		t.Errorf("pipeline length %v should equal pond length %v", s.PipelineLength, s.LengthPond)
	}
	if math.Abs(s.AcPond-fresno.Acres()) > 1e-9 {
		t.Errorf("AcPond = %v, want %v", s.AcPond, fresno.Acres())
	}
	if s.SoilType != basin.SoilSand || s.InfiltrationRate != 2.0 {
		t.Errorf("soil = %s at %v, want sand at 2.0", s.SoilType, s.InfiltrationRate)
	}

	in := basin.FromParameters(basin.Defaults())
	s.Apply(&in)
	if *in.SoilType != basin.SoilSand {
		t.Errorf("Apply soil = %s", *in.SoilType)
	}
	if v, _ := in.Value("width_pond"); v != s.WidthPond {
		t.Errorf("Apply width = %v, want %v", v, s.WidthPond)
	}
	if v, _ := in.Value("levee_width"); v != 8 {
		t.Errorf("Apply should leave levee width alone, got %v", v)
	}

	fence := 2 * (fresno.WidthFeet() + fresno.LengthFeet())
	if math.Abs(s.BoundaryLength-fence)/fence > 0.005 {
		t.Errorf("BoundaryLength = %v, want ~%v", s.BoundaryLength, fence)
	}
}

func TestApplyClampsToFieldDomain(t *testing.T) {
	s := Suggestion{
		AcPond:           -3,
		LengthPond:       500,
		WidthPond:        math.NaN(),
		PipelineLength:   500,
		InfiltrationRate: -0.5,
		SoilType:         basin.SoilLoam,
	}
	in := basin.FromParameters(basin.Defaults())
	s.Apply(&in)

	if v, _ := in.Value("ac_pond"); v != 0 {
		t.Errorf("ac_pond = %v, want clamped to 0", v)
	}
	if v, _ := in.Value("infiltration_rate"); v != 0 {
		t.Errorf("infiltration_rate = %v, want clamped to 0", v)
	}
	if v, _ := in.Value("width_pond"); v != 2640 {
		t.Errorf("NaN width should be skipped, got %v", v)
	}
	if v, _ := in.Value("length_pond"); v != 500 {
		t.Errorf("length_pond = %v, want 500", v)
	}
}

func TestSuggestNoUnits(t *testing.T) {
	s := Suggest(fresno, nil)
	if s.SoilType != basin.SoilLoam || s.Classified {
		t.Errorf("expected unclassified loam, got %s (%v)", s.SoilType, s.Classified)
	}
}

func TestSuggestionCheck(t *testing.T) {
	sand := Suggest(fresno, []MapUnit{{Symbol: "DhA", Description: "Delhi sand", Acres: 20}})
	r := sand.Check()
	if len(r.Warnings) != 0 || len(r.Info) != 1 {
		t.Errorf("classified sand: %d warnings, %d info", len(r.Warnings), len(r.Info))
	}

	r = Suggest(fresno, nil).Check()
	if len(r.Warnings) != 1 || r.Warnings[0].Field != "soil_type" {
		t.Errorf("unclassified soil should warn on soil_type, got %+v", r.Warnings)
	}

	r = Suggest(fresno, []MapUnit{{Symbol: "Wo", Description: "Willows clay", Acres: 20}}).Check()
	if len(r.Warnings) != 1 || r.Warnings[0].Field != "infiltration_rate" {
		t.Errorf("restrictive clay should warn on infiltration_rate, got %+v", r.Warnings)
	}
	if !r.Valid {
		t.Error("site findings never invalidate the report")
	}
}

// fakeSDA answers the four report-service calls in order.
func fakeSDA(t *testing.T, reportName string) (*httptest.Server, *[]map[string]any) {
	t.Helper()
	var mu sync.Mutex
	var calls []map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mu.Lock()
		calls = append(calls, req)
		mu.Unlock()

		switch req["REQUEST"] {
		case "create":
			w.Write([]byte(`{"id": 4242}`))
		case "getcatalog":
			w.Write([]byte(`{"tables":[{"folders":[
				{"reports":[{"reportid": 1, "reportname": "Map Unit Description"}]},
				{"reports":[{"reportid": 7, "reportname": "` + reportName + `"}]}]}]}`))
		case "getreportdata":
			w.Write([]byte(`{"reportid": 7, "parameters": []}`))
		case "getreport":
			w.Write([]byte(sampleReport))
		default:
			http.Error(w, "unknown request", http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestLookup(t *testing.T) {
	srv, calls := fakeSDA(t, "Component Legend")
	c := NewClient(srv.URL, 5*time.Second)

	units, err := c.Lookup(context.Background(), fresno)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if units[0].Symbol != "GrA" {
		t.Errorf("dominant = %q, want GrA", units[0].Symbol)
	}

	if len(*calls) != 4 {
		t.Fatalf("expected 4 calls, got %d", len(*calls))
	}
	create := (*calls)[0]
	coords, ok := create["AOICOORDS"].(string)
	if !ok || !strings.Contains(coords, "FeatureCollection") {
		t.Errorf("AOICOORDS should be GeoJSON text, got %v", create["AOICOORDS"])
	}
	data := (*calls)[2]
	if data["REPORTID"] != float64(7) || data["AOIID"] != float64(4242) || data["FORMAT"] != "short" {
		t.Errorf("unexpected getreportdata request: %v", data)
	}
	if _, ok := (*calls)[3]["SHORTFORMDATA"].(string); !ok {
		t.Error("SHORTFORMDATA should be sent as text")
	}
}

func TestLookupFallsBackToFirstReport(t *testing.T) {
	srv, calls := fakeSDA(t, "Something Else")
	c := NewClient(srv.URL, 5*time.Second)

	if _, err := c.Lookup(context.Background(), fresno); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if (*calls)[2]["REPORTID"] != float64(1) {
		t.Errorf("expected fallback to report 1, got %v", (*calls)[2]["REPORTID"])
	}
}

func TestLookupUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Lookup(context.Background(), fresno)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestLookupMissingAOIID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Lookup(context.Background(), fresno)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestLookupInvalidBounds(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", time.Second)
	_, err := c.Lookup(context.Background(), geo.Bounds{North: 1, South: 2, East: 1, West: 0})
	if !errors.Is(err, geo.ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
}
