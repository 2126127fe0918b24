package ports

import "testing"

func ids(list []Port) []int {
	out := make([]int, len(list))
	for i, p := range list {
		out[i] = p.Number
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"zero filter", Filter{}, []int{3000, 8000, 5432, 8080, 6379, 27017, 9200, 5601}},
		{"all status", Filter{Status: StatusAll}, []int{3000, 8000, 5432, 8080, 6379, 27017, 9200, 5601}},
		{"active", Filter{Status: StatusActive}, []int{3000, 8000, 5432, 6379, 5601}},
		{"warning", Filter{Status: StatusWarning}, []int{8080}},
		{"error", Filter{Status: StatusError}, []int{27017}},
		{"hide system", Filter{HideSystem: true}, []int{3000, 8000, 8080, 27017, 9200, 5601}},
		{"active without system", Filter{Status: StatusActive, HideSystem: true}, []int{3000, 8000, 5601}},
		{"port number substring", Filter{Query: "80"}, []int{8000, 8080}},
		{"name case-insensitive", Filter{Query: "REDIS"}, []int{6379}},
		{"description", Filter{Query: "nosql"}, []int{27017}},
		{"tag", Filter{Query: "database"}, []int{5432, 27017}},
		{"elastic matches name and description", Filter{Query: "elasticsearch"}, []int{9200, 5601}},
		{"query and status", Filter{Query: "database", Status: StatusError}, []int{27017}},
		{"no match", Filter{Query: "zzz"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(Sample()))
			if !equalInts(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleReturnsCopy(t *testing.T) {
	a := Sample()
	a[0].Tags[0] = "changed"
	a[0].Name = "changed"

	b := Sample()
	if b[0].Name == "changed" || b[0].Tags[0] == "changed" {
		t.Error("Sample() should return independent copies")
	}
}

func TestFind(t *testing.T) {
	p, ok := Find(Sample(), "port-8080")
	if !ok || p.Number != 8080 {
		t.Errorf("Find(port-8080) = %v, %v", p.Number, ok)
	}
	if _, ok := Find(Sample(), "port-1"); ok {
		t.Error("Find(port-1) should fail")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(Sample())
	want := Summary{Total: 8, Active: 5, Inactive: 1, Warning: 1, Error: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestPortHelpers(t *testing.T) {
	tests := []struct {
		port    Port
		process string
		pid     string
		url     string
	}{
		{Port{Name: "Web", ProcessName: "node", PID: 1, Number: 3000, Protocol: ProtocolHTTP}, "node", "1", "http://localhost:3000"},
		{Port{Name: "Kibana", Number: 5601, Protocol: ProtocolHTTPS}, "Kibana", "N/A", "https://localhost:5601"},
		{Port{Name: "DB", ProcessName: "postgres", PID: 7, Number: 5432, Protocol: ProtocolTCP}, "postgres", "7", ""},
	}

	for _, tt := range tests {
		t.Run(tt.port.Name, func(t *testing.T) {
			if got := tt.port.Process(); got != tt.process {
				t.Errorf("Process() = %q, want %q", got, tt.process)
			}
			if got := tt.port.PIDString(); got != tt.pid {
				t.Errorf("PIDString() = %q, want %q", got, tt.pid)
			}
			if got := tt.port.URL(); got != tt.url {
				t.Errorf("URL() = %q, want %q", got, tt.url)
			}
		})
	}
}

func TestStatusSymbol(t *testing.T) {
	seen := map[string]Status{}
	for _, s := range []Status{StatusActive, StatusInactive, StatusWarning, StatusError} {
		sym := s.Symbol()
		if prev, dup := seen[sym]; dup {
			t.Errorf("%v and %v share symbol %q", prev, s, sym)
		}
		seen[sym] = s
	}
}
