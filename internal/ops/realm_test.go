package ops

import "testing"

func TestRealms_Ladder(t *testing.T) {
	ladder := Realms()
	if len(ladder) != 5 {
		t.Fatalf("len = %d, want 5", len(ladder))
	}
	names := []string{"炼气", "筑基", "金丹", "元婴", "化神"}
	exp := []int{100, 500, 2000, 8000, 30000}
	for i, r := range ladder {
		if r.Name != names[i] || r.Level != i+1 || r.ExpRequired != exp[i] {
			t.Errorf("realm %d = %+v", i, r)
		}
		if r.Icon == "" || r.Description == "" {
			t.Errorf("realm %s missing icon or description", r.Name)
		}
	}
	if ladder[0].Description != "引气入体，打熬身体" {
		t.Errorf("炼气 description = %q", ladder[0].Description)
	}
}

func TestAdvance_NoBreakthrough(t *testing.T) {
	realm, expLeft, n := advance(FirstRealm(), 10, 50)
	if realm.Name != "炼气" || expLeft != 60 || n != 0 {
		t.Errorf("advance = %s, %v, %d", realm.Name, expLeft, n)
	}
}

func TestAdvance_SingleBreakthrough(t *testing.T) {
	realm, expLeft, n := advance(FirstRealm(), 90, 30)
	if realm.Name != "筑基" || expLeft != 20 || n != 1 {
		t.Errorf("advance = %s, %v, %d", realm.Name, expLeft, n)
	}
}

func TestAdvance_ChainedBreakthroughs(t *testing.T) {
	// 700 exp from zero covers 炼气 (100) and 筑基 (500) with 100 left
	realm, expLeft, n := advance(FirstRealm(), 0, 700)
	if realm.Name != "金丹" || expLeft != 100 || n != 2 {
		t.Errorf("advance = %s, %v, %d", realm.Name, expLeft, n)
	}
}

func TestAdvance_TopRealmAccumulates(t *testing.T) {
	top := realmByName("化神")
	realm, expLeft, n := advance(top, 29999, 100000)
	if realm.Name != "化神" || n != 0 {
		t.Errorf("advance = %s, %d, want stay at top", realm.Name, n)
	}
	if expLeft != 129999 {
		t.Errorf("expLeft = %v, want 129999", expLeft)
	}
}

func TestRealmByName_Unknown(t *testing.T) {
	if r := realmByName("不存在"); r.Name != "炼气" {
		t.Errorf("unknown realm should map to the first, got %s", r.Name)
	}
}

func TestNextRealm(t *testing.T) {
	if next := nextRealm(realmByName("筑基")); next.Name != "金丹" {
		t.Errorf("next after 筑基 = %s, want 金丹", next.Name)
	}
	if next := nextRealm(realmByName("化神")); next.Name != "化神" {
		t.Errorf("next after 化神 = %s, want 化神 itself", next.Name)
	}
}
