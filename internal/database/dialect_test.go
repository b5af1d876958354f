package database

import "testing"

func TestParseDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "", want: MySQL},
		{in: "MySQL", want: MySQL},
		{in: "postgresql", want: Postgres},
		{in: "sqlite3", want: SQLite},
		{in: "oracle", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseDialect(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDialect(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseDialect(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestRebind(t *testing.T) {
	t.Parallel()

	q := "INSERT INTO tickets(session_id, pos_row, cell, user_id) VALUES(?, ?, ?, ?)"
	if got := MySQL.Rebind(q); got != q {
		t.Fatalf("mysql rebind changed query: %q", got)
	}
	want := "INSERT INTO tickets(session_id, pos_row, cell, user_id) VALUES($1, $2, $3, $4)"
	if got := Postgres.Rebind(q); got != want {
		t.Fatalf("postgres rebind = %q, want %q", got, want)
	}
}

func TestDSN(t *testing.T) {
	t.Parallel()

	o := Options{User: "app", Pass: "p@ss", Host: "db", Port: "5432", Name: "cinema"}
	if got := dsn(Postgres, o); got != "postgres://app:p%40ss@db:5432/cinema?sslmode=disable" {
		t.Fatalf("postgres dsn = %q", got)
	}
	o.Port = "3306"
	if got := dsn(MySQL, o); got != "app:p@ss@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC" {
		t.Fatalf("mysql dsn = %q", got)
	}
}
