package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/omnistock-hub/internal/domain/tracker"
)

// Febrero bisiesto: 29 días; no bisiesto: 28. Siempre ascendente, con cero
// a la izquierda, del 01 al último día.
func TestDatesInMonth_Febrero(t *testing.T) {
	bisiesto, err := tracker.DatesInMonth("2024-02")
	require.NoError(t, err)
	assert.Len(t, bisiesto, 29)
	assert.Equal(t, "2024-02-01", bisiesto[0])
	assert.Equal(t, "2024-02-29", bisiesto[28])

	normal, err := tracker.DatesInMonth("2023-02")
	require.NoError(t, err)
	assert.Len(t, normal, 28)
	assert.Equal(t, "2023-02-28", normal[27])
}

func TestDatesInMonth_EstrictamenteAscendente(t *testing.T) {
	dates, err := tracker.DatesInMonth("2024-12")
	require.NoError(t, err)
	require.Len(t, dates, 31)
	for i := 1; i < len(dates); i++ {
		assert.Less(t, dates[i-1], dates[i])
	}
}

func TestDatesInMonth_MesInvalido(t *testing.T) {
	_, err := tracker.DatesInMonth("2024-13")
	assert.Error(t, err)

	_, err = tracker.DatesInMonth("febrero")
	assert.Error(t, err)
}

// Normalizar una fecha ya canónica es un no-op (idempotencia round-trip).
func TestNormalizeDate_Idempotente(t *testing.T) {
	assert.Equal(t, "2024-02-29", tracker.NormalizeDate("2024-02-29"))
	once := tracker.NormalizeDate("2024-07-15T08:30:00")
	assert.Equal(t, once, tracker.NormalizeDate(once))
}

// Un timestamp sin zona se interpreta en hora local: los componentes
// calendario se conservan tal cual, sin corrimiento de día.
func TestNormalizeDate_DescartaHora(t *testing.T) {
	assert.Equal(t, "2024-07-15", tracker.NormalizeDate("2024-07-15T23:59:59"))
	assert.Equal(t, "2024-07-15", tracker.NormalizeDate("2024-07-15 00:00:01"))
}

// Valor irreconocible: se devuelve sin tocar (la frontera ya validó).
func TestNormalizeDate_ValorDesconocido(t *testing.T) {
	assert.Equal(t, "sin-fecha", tracker.NormalizeDate("sin-fecha"))
}
