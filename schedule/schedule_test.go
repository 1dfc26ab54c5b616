package schedule

import "testing"

func TestScheduleAddStageRejectsDuplicate(t *testing.T) {
	s := NewSchedule()
	lbl := StringLabel("Update")
	if err := s.AddStage(NewStage(lbl)); err != nil {
		t.Fatalf("AddStage: %v", err)
	}
	if err := s.AddStage(NewStage(lbl)); err == nil {
		t.Fatal("AddStage with a duplicate label returned nil error")
	}
}

func TestScheduleAddStageBeforeAfter(t *testing.T) {
	s := NewSchedule()
	input := StringLabel("Input")
	update := StringLabel("Update")
	render := StringLabel("Render")

	if err := s.AddStage(NewStage(input)); err != nil {
		t.Fatalf("AddStage(Input): %v", err)
	}
	if err := s.AddStage(NewStage(render)); err != nil {
		t.Fatalf("AddStage(Render): %v", err)
	}
	if err := s.AddStageAfter(input, NewStage(update)); err != nil {
		t.Fatalf("AddStageAfter: %v", err)
	}
	if err := s.AddStageBefore(render, NewStage(StringLabel("Late"))); err != nil {
		t.Fatalf("AddStageBefore: %v", err)
	}

	order := make([]string, len(s.Stages()))
	for i, st := range s.Stages() {
		order[i] = st.Label().String()
	}
	want := []string{"Input", "Update", "Late", "Render"}
	if len(order) != len(want) {
		t.Fatalf("stage order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("stage order = %v, want %v", order, want)
		}
	}
}

func TestScheduleAddStageBeforeUnknownExisting(t *testing.T) {
	s := NewSchedule()
	err := s.AddStageBefore(StringLabel("missing"), NewStage(StringLabel("X")))
	if err == nil {
		t.Fatal("AddStageBefore with an unknown existing label returned nil error")
	}
}
