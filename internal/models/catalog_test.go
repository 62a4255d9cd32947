package models

import "testing"

func TestCareer_BuildContentText(t *testing.T) {
	career := &Career{
		Title:       "Data Scientist",
		Description: "Builds models from data.",
		Tags: []Tag{
			{Name: "analytics"},
			{Name: "python"},
		},
		RequiredSkills: []Skill{
			{Name: "statistics"},
		},
	}

	got := career.BuildContentText()
	want := "Data Scientist | Builds models from data. | analytics python | statistics"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if career.ContentText != want {
		t.Error("BuildContentText must persist the result on the model")
	}
}

func TestCareer_BuildContentText_SkipsEmptyParts(t *testing.T) {
	career := &Career{Title: "Electrician"}

	if got := career.BuildContentText(); got != "Electrician" {
		t.Errorf("Expected %q, got %q", "Electrician", got)
	}
}

func TestResource_BuildContentText(t *testing.T) {
	resource := &Resource{
		Title:       "Interview Guide",
		Description: "  How to prepare.  ",
		Tags:        []Tag{{Name: "interviews"}},
	}

	want := "Interview Guide | How to prepare. | interviews"
	if got := resource.BuildContentText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestMultimedia_BuildContentText(t *testing.T) {
	media := &Multimedia{
		Title:      "Day in the Life",
		Transcript: "",
		Tags:       []Tag{{Name: "video"}, {Name: "careers"}},
	}

	want := "Day in the Life | video careers"
	if got := media.BuildContentText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSuccessStory_BuildContentText(t *testing.T) {
	domain := "engineering"
	story := &SuccessStory{
		Title:     "From Intern to Lead",
		StoryText: "It took five years.",
		Domain:    &domain,
	}

	want := "From Intern to Lead | It took five years. | engineering"
	if got := story.BuildContentText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	story.Domain = nil
	want = "From Intern to Lead | It took five years."
	if got := story.BuildContentText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
