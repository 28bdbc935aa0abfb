package character

// The six standard abilities, in sheet order
const (
	Strength     = "strength"
	Dexterity    = "dexterity"
	Constitution = "constitution"
	Intelligence = "intelligence"
	Wisdom       = "wisdom"
	Charisma     = "charisma"
)

// Abilities lists the standard abilities in sheet order
var Abilities = []string{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// DefaultAbilityScore is used when neither final nor base stats know an ability
const DefaultAbilityScore = 10

// AbilityModifier returns floor((score - 10) / 2)
func AbilityModifier(score int) int {
	d := score - 10
	if d < 0 {
		return (d - 1) / 2
	}
	return d / 2
}

// ProficiencyBonus returns the proficiency bonus for a character level
func ProficiencyBonus(level int) int {
	switch {
	case level >= 17:
		return 6
	case level >= 13:
		return 5
	case level >= 9:
		return 4
	case level >= 5:
		return 3
	default:
		return 2
	}
}

// ArmorType is the armor category used for base armor class
type ArmorType string

const (
	ArmorNone   ArmorType = "none"
	ArmorLight  ArmorType = "light"
	ArmorMedium ArmorType = "medium"
	ArmorHeavy  ArmorType = "heavy"
)

// BaseArmorClass computes armor class from dexterity and worn armor
func BaseArmorClass(dexterity int, armor ArmorType, shield bool) int {
	mod := AbilityModifier(dexterity)
	ac := 10 + mod
	switch armor {
	case ArmorLight:
		ac = 11 + mod
	case ArmorMedium:
		ac = 12 + min(mod, 2)
	case ArmorHeavy:
		ac = 16
	}
	if shield {
		ac += 2
	}
	return ac
}

// MaxHitPoints computes hit points at a level using the average per-level
// roll. Any level above zero has at least 1 hit point.
func MaxHitPoints(hitDie, level, conMod int) int {
	if level <= 0 {
		return 0
	}
	first := hitDie + conMod
	if level == 1 {
		return max(1, first)
	}
	avg := hitDie/2 + 1 + conMod
	return max(1, first+(level-1)*max(1, avg))
}
