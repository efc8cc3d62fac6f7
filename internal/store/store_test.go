package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"golang.org/x/crypto/bcrypt"

	"academia/internal/auth"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "nested", "academia.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	if err := db.Client.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestInitSchemaIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if _, err := db.Client.Exec(`INSERT INTO students (name, student_id) VALUES ('Jane Roe', 'S999999')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := db.InitSchema(ctx); err != nil {
			t.Fatalf("init schema pass %d: %v", i, err)
		}
	}
	if got := count(t, db, "students"); got != 1 {
		t.Fatalf("students = %d after re-init, want 1", got)
	}
	for _, table := range []string{"users", "courses", "attendance", "schedule"} {
		_ = count(t, db, table)
	}
	if !db.Healthy(ctx) {
		t.Fatal("db not healthy")
	}
}

func TestAttendanceUniquePerStudentDay(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Client.Exec(`INSERT INTO attendance (student_id, date, status) VALUES (1, '2026-10-14', 'present')`); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Client.Exec(`INSERT INTO attendance (student_id, date, status) VALUES (1, '2026-10-14', 'late')`); err == nil {
		t.Fatal("duplicate (student, date) accepted")
	}
	if _, err := db.Client.Exec(`INSERT INTO attendance (student_id, date, status) VALUES (1, '2026-10-15', 'late')`); err != nil {
		t.Fatalf("next day insert: %v", err)
	}
}

func TestSeedSampleData(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	seeded, err := db.SeedSampleData(ctx, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("empty database was not seeded")
	}
	want := map[string]int{"users": 4, "students": 6, "courses": 6}
	for table, n := range want {
		if got := count(t, db, table); got != n {
			t.Fatalf("%s = %d, want %d", table, got, n)
		}
	}

	seeded, err = db.SeedSampleData(ctx, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if seeded {
		t.Fatal("populated database was seeded again")
	}
	if got := count(t, db, "users"); got != 4 {
		t.Fatalf("users = %d after second seed", got)
	}

	var hash string
	if err := db.Client.QueryRow(`SELECT password_hash FROM users WHERE email = 'admin@academia.edu'`).Scan(&hash); err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !auth.CheckPassword(hash, "admin123") {
		t.Fatal("seeded admin password does not verify")
	}

	var prof string
	err = db.Client.QueryRow(`SELECT u.name FROM courses c JOIN users u ON u.id = c.professor_id WHERE c.abbreviation = 'PMC'`).Scan(&prof)
	if err != nil {
		t.Fatalf("load course professor: %v", err)
	}
	if prof != "Prof. Johnson" {
		t.Fatalf("PMC professor = %q", prof)
	}
}

func TestRedisHealthy(t *testing.T) {
	if NewRedis("") != nil {
		t.Fatal("empty addr should disable redis")
	}
	var disabled *Redis
	if disabled.Healthy(context.Background()) {
		t.Fatal("nil redis reported healthy")
	}

	mr := miniredis.RunT(t)
	r := NewRedis(mr.Addr())
	defer r.Close()
	if !r.Healthy(context.Background()) {
		t.Fatal("miniredis not healthy")
	}
	mr.Close()
	if r.Healthy(context.Background()) {
		t.Fatal("closed redis reported healthy")
	}
}
