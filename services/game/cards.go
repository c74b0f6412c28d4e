package game

// CardType clasifica las cartas del mazo de "La Cosa".
type CardType string

const (
	TypeContagion CardType = "contagio"
	TypeAction    CardType = "accion"
	TypeDefense   CardType = "defensa"
	TypeObstacle  CardType = "obstaculo"
	TypePanic     CardType = "panico"
)

// Display names of every card in the catalog. The dispatcher is keyed by
// these names but decided once at registration time, never re-parsed.
const (
	LaCosa            = "La Cosa"
	Infectado         = "¡Infectado!"
	Lanzallamas       = "Lanzallamas"
	Analisis          = "Análisis"
	Hacha             = "Hacha"
	Sospecha          = "Sospecha"
	Whisky            = "Whisky"
	CambioDeLugar     = "Cambio de lugar"
	VigilaTusEspaldas = "Vigila tus espaldas"
	Seduccion         = "Seducción"
	MasValeQueCorras  = "¡Más vale que corras!"
	PuertaAtrancada   = "Puerta atrancada"
	Cuarentena        = "Cuarentena"

	Aterrador       = "Aterrador"
	AquiEstoyBien   = "¡Aquí estoy bien!"
	NoGracias       = "¡No, gracias!"
	Fallaste        = "¡Fallaste!"
	NadaDeBarbacoas = "¡Nada de barbacoas!"

	VueltaYVuelta         = "Vuelta y vuelta"
	CuerdasPodridas       = "Cuerdas podridas"
	UnoDos                = "Uno, dos..."
	TresCuatro            = "Tres, cuatro..."
	EsAquiLaFiesta        = "¿Es aquí la fiesta?"
	SalDeAqui             = "¡Sal de aquí!"
	Olvidadizo            = "Olvidadizo"
	Revelaciones          = "Revelaciones"
	QueQuedeEntreNosotros = "Que quede entre nosotros"
	CitaACiegas           = "Cita a ciegas"
	Ups                   = "¡Ups!"
)

// Card is one physical copy of a catalog template. A copy lives in exactly
// one container at a time: the draw pile, the discard pile or a hand.
type Card struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Type   CardType `json:"type"`
	Number int      `json:"number"` // minimum player count for this copy to enter the deck
}

// IsPanic reports whether the card forces immediate resolution when drawn.
func (c Card) IsPanic() bool { return c.Type == TypePanic }

// CardSpec holds the per-name behaviour flags and the effect function.
// Everything here is fixed when the catalog is registered.
type CardSpec struct {
	Type             CardType
	RequiresTarget   bool
	RequiresAdjacent bool
	AllowsAnyTarget  bool // may target any living player, ignoring adjacency
	ThreeSteps       bool // target must be exactly three living steps away
	FreeExchange     bool // grants a free-target exchange after resolving
	DefendedBy       []string
	Effect           EffectFunc
}

// Defensible reports whether playing this card opens a defense window.
func (s CardSpec) Defensible() bool { return len(s.DefendedBy) > 0 }

// CanBeDefendedWith reports whether the given defense card counters this card.
func (s CardSpec) CanBeDefendedWith(defense string) bool {
	for _, d := range s.DefendedBy {
		if d == defense {
			return true
		}
	}
	return false
}

var cardSpecs = map[string]CardSpec{
	LaCosa:    {Type: TypeContagion},
	Infectado: {Type: TypeContagion},

	Lanzallamas:       {Type: TypeAction, RequiresTarget: true, RequiresAdjacent: true, DefendedBy: []string{NadaDeBarbacoas}, Effect: effectLanzallamas},
	Analisis:          {Type: TypeAction, RequiresTarget: true, RequiresAdjacent: true, Effect: effectAnalisis},
	Hacha:             {Type: TypeAction, RequiresTarget: true, RequiresAdjacent: true, Effect: effectHacha},
	Sospecha:          {Type: TypeAction, RequiresTarget: true, RequiresAdjacent: true, Effect: effectSospecha},
	Whisky:            {Type: TypeAction, Effect: effectWhisky},
	CambioDeLugar:     {Type: TypeAction, RequiresTarget: true, RequiresAdjacent: true, DefendedBy: []string{AquiEstoyBien}, Effect: effectSwapPositions},
	VigilaTusEspaldas: {Type: TypeAction, Effect: effectReverseDirection},
	Seduccion:         {Type: TypeAction, RequiresTarget: true, AllowsAnyTarget: true, FreeExchange: true, Effect: effectSeduccion},
	MasValeQueCorras:  {Type: TypeAction, RequiresTarget: true, AllowsAnyTarget: true, DefendedBy: []string{AquiEstoyBien}, Effect: effectSwapPositions},
	PuertaAtrancada:   {Type: TypeObstacle, RequiresTarget: true, RequiresAdjacent: true, Effect: effectPuertaAtrancada},
	Cuarentena:        {Type: TypeObstacle, RequiresTarget: true, RequiresAdjacent: true, Effect: effectCuarentena},

	// Defense cards are never played proactively; they only answer an attack
	// or an exchange offer, so they carry no effect of their own.
	Aterrador:       {Type: TypeDefense},
	AquiEstoyBien:   {Type: TypeDefense},
	NoGracias:       {Type: TypeDefense},
	Fallaste:        {Type: TypeDefense},
	NadaDeBarbacoas: {Type: TypeDefense},

	VueltaYVuelta:         {Type: TypePanic, Effect: effectVueltaYVuelta},
	CuerdasPodridas:       {Type: TypePanic, Effect: effectCuerdasPodridas},
	UnoDos:                {Type: TypePanic, RequiresTarget: true, ThreeSteps: true, Effect: effectSwapPositions},
	TresCuatro:            {Type: TypePanic, Effect: effectTresCuatro},
	EsAquiLaFiesta:        {Type: TypePanic, Effect: effectEsAquiLaFiesta},
	SalDeAqui:             {Type: TypePanic, RequiresTarget: true, AllowsAnyTarget: true, Effect: effectSwapPositions},
	Olvidadizo:            {Type: TypePanic, Effect: effectOlvidadizo},
	Revelaciones:          {Type: TypePanic, Effect: effectRevelaciones},
	QueQuedeEntreNosotros: {Type: TypePanic, RequiresTarget: true, RequiresAdjacent: true, Effect: effectQueQuedeEntreNosotros},
	CitaACiegas:           {Type: TypePanic, Effect: effectCitaACiegas},
	Ups:                   {Type: TypePanic, Effect: effectUps},
}

// GetCardSpec returns the registered behaviour for a card name.
func GetCardSpec(name string) (CardSpec, bool) {
	spec, ok := cardSpecs[name]
	return spec, ok
}

// catalogEntry lists the copies of one card template. Each value in
// numbers is the minimum player count for that physical copy to be
// shuffled into the deck, following the printed deck composition.
type catalogEntry struct {
	name    string
	numbers []int
}

var catalog = []catalogEntry{
	{LaCosa, []int{4}},
	{Infectado, []int{4, 4, 4, 4, 4, 4, 4, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11}},

	{Lanzallamas, []int{4, 4, 6, 8, 10}},
	{Analisis, []int{5, 6, 9}},
	{Hacha, []int{4, 9}},
	{Sospecha, []int{4, 4, 4, 4, 7, 8, 9, 10}},
	{Whisky, []int{4, 6, 10}},
	{CambioDeLugar, []int{4, 4, 7, 9, 11}},
	{VigilaTusEspaldas, []int{4, 9}},
	{Seduccion, []int{4, 4, 5, 6, 7, 8, 10}},
	{MasValeQueCorras, []int{4, 4, 7, 9, 11}},
	{PuertaAtrancada, []int{4, 7, 11}},
	{Cuarentena, []int{4, 9}},

	{Aterrador, []int{5, 6, 7, 8, 11}},
	{AquiEstoyBien, []int{4, 6, 11}},
	{NoGracias, []int{4, 6, 11}},
	{Fallaste, []int{4, 6, 11}},
	{NadaDeBarbacoas, []int{4, 6, 8, 11}},

	{VueltaYVuelta, []int{5, 10}},
	{CuerdasPodridas, []int{6, 9, 11}},
	{UnoDos, []int{5, 10}},
	{TresCuatro, []int{4, 9, 11}},
	{EsAquiLaFiesta, []int{5, 9}},
	{SalDeAqui, []int{5, 11}},
	{Olvidadizo, []int{4}},
	{Revelaciones, []int{8}},
	{QueQuedeEntreNosotros, []int{7, 9}},
	{CitaACiegas, []int{4, 9}},
	{Ups, []int{10}},
}

// BuildDeck materializes every catalog copy whose threshold admits the
// given player count. IDs are dense and unique within the match.
func BuildDeck(playerCount int) []Card {
	var cards []Card
	id := 0
	for _, entry := range catalog {
		spec := cardSpecs[entry.name]
		for _, number := range entry.numbers {
			if number <= playerCount {
				cards = append(cards, Card{
					ID:     id,
					Name:   entry.name,
					Type:   spec.Type,
					Number: number,
				})
				id++
			}
		}
	}
	return cards
}
