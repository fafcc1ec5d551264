package reference

type Status struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Species struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Breed struct {
	ID        int    `json:"id"`
	SpeciesID int    `json:"species_id"`
	Name      string `json:"name"`
}

type Color struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

type Sex struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
