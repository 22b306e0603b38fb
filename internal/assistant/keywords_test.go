package assistant

import (
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []Category
	}{
		{
			name:    "task keyword",
			message: "Tengo que comprar leche mañana",
			want:    []Category{CategoryTask},
		},
		{
			name:    "schedule keyword",
			message: "¿Qué hay en mi calendario hoy?",
			want:    []Category{CategorySchedule},
		},
		{
			name:    "habit keyword",
			message: "Quiero seguir mi rutina de ejercicio",
			want:    []Category{CategoryHabit},
		},
		{
			name:    "home keyword",
			message: "Apagar la luz del salón",
			want:    []Category{CategoryHome},
		},
		{
			name:    "support keyword",
			message: "La app me da un error al abrir",
			want:    []Category{CategorySupport},
		},
		{
			name:    "multiple categories",
			message: "Agendar una reunión y recordar enviar el informe",
			want:    []Category{CategoryTask, CategorySchedule},
		},
		{
			name:    "case insensitive",
			message: "TENGO QUE llamar al médico",
			want:    []Category{CategoryTask},
		},
		{
			name:    "no keywords",
			message: "Hola, ¿cómo estás?",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.message)
			if len(got) != len(tt.want) {
				t.Fatalf("Detect() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Detect()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
