package elements

// Element type tokens as reported by the Archicad JSON API.
const (
	TypeWall        = "Wall"
	TypeColumn      = "Column"
	TypeBeam        = "Beam"
	TypeWindow      = "Window"
	TypeDoor        = "Door"
	TypeObject      = "Object"
	TypeLamp        = "Lamp"
	TypeSlab        = "Slab"
	TypeRoof        = "Roof"
	TypeMesh        = "Mesh"
	TypeZone        = "Zone"
	TypeCurtainWall = "CurtainWall"
	TypeShell       = "Shell"
	TypeSkylight    = "Skylight"
	TypeMorph       = "Morph"
	TypeStair       = "Stair"
	TypeRailing     = "Railing"
	TypeOpening     = "Opening"
)
