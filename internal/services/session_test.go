package services

import "testing"

func TestSessionRoundTrip(t *testing.T) {
	sessions := SessionService{Secret: []byte("test-secret"), Issuer: "schooldesk"}

	blob, err := sessions.IssueTeacher(42, "Alice")
	if err != nil {
		t.Fatal(err)
	}
	principal, err := sessions.Parse(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !principal.IsTeacher() || principal.IsAdmin() || principal.TeacherID != 42 || principal.TeacherName != "Alice" {
		t.Fatalf("principal = %+v", principal)
	}

	blob, err = sessions.IssueAdmin()
	if err != nil {
		t.Fatal(err)
	}
	principal, err = sessions.Parse(blob)
	if err != nil {
		t.Fatal(err)
	}
	if !principal.IsAdmin() || principal.IsTeacher() {
		t.Fatalf("principal = %+v", principal)
	}
}

func TestSessionRejectsForeignSecret(t *testing.T) {
	issued := SessionService{Secret: []byte("secret-a"), Issuer: "schooldesk"}
	verifier := SessionService{Secret: []byte("secret-b"), Issuer: "schooldesk"}

	blob, err := issued.IssueAdmin()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Parse(blob); err == nil {
		t.Fatal("blob signed with a different secret accepted")
	}
	if _, err := verifier.Parse("not-a-token"); err == nil {
		t.Fatal("garbage blob accepted")
	}
}

func TestAnonymousPrincipal(t *testing.T) {
	p := Principal{}
	if !p.IsAnonymous() || p.IsAdmin() || p.IsTeacher() {
		t.Fatalf("zero principal = %+v", p)
	}
}
