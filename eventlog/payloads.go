package eventlog

// Payload types carried in Event.Data, one per Type in the closed set.
// Fields mirror the quantities spec.md names for that event so the log
// alone is sufficient to reconstruct the battle.

// DataTurnEnded accompanies TypeTurnEnded.
type DataTurnEnded struct {
	ActionsResolved int
}

// DataUnitMoved accompanies TypeUnitMoved.
type DataUnitMoved struct {
	FromX, FromY float64
	ToX, ToY     float64
	Path         [][2]float64
}

// DataUnitTurned accompanies TypeUnitTurned.
type DataUnitTurned struct {
	FromFacing, ToFacing float64
	APCost               int
}

// DataAttackDeclared accompanies TypeAttackDeclared.
type DataAttackDeclared struct {
	AttackType string
	IsProvoke  bool
}

// DataAttackRolled accompanies TypeAttackRolled.
type DataAttackRolled struct {
	BaseSkill      int
	EffectiveSkill int
	Roll           int
	Hit            bool
	Modifiers      map[string]int
}

// DataDefenseRolled accompanies TypeDefenseRolled.
type DataDefenseRolled struct {
	DefenseType    string
	BaseSkill      int
	EffectiveSkill int
	Roll           int
	Success        bool
	Modifiers      map[string]int
}

// DataHitLocationRolled accompanies TypeHitLocationRolled.
type DataHitLocationRolled struct {
	Roll     int
	Location string
	Chosen   bool
}

// DataDamageDealt accompanies TypeDamageDealt.
type DataDamageDealt struct {
	RawDamage   int
	ArmorAbsorb int
	FinalDamage int
	Location    string
	Multiplier  int
	HPBefore    int
	HPAfter     int
}

// DataUnitWounded accompanies TypeUnitWounded.
type DataUnitWounded struct {
	FromState, ToState string
}

// DataUnitDown accompanies TypeUnitDown.
type DataUnitDown struct {
	Reason string
}

// DataAttackOutOfRange accompanies TypeAttackOutOfRange.
type DataAttackOutOfRange struct {
	Distance       float64
	RequiredRange  float64
}

// DataWeaponHitDeflected accompanies TypeWeaponHitDeflected.
type DataWeaponHitDeflected struct {
	RawDamage int
}

// DataWeaponBroken accompanies TypeWeaponBroken.
type DataWeaponBroken struct {
	BrokeShield bool
	BrokeWeapon bool
}

// DataArmorImpact accompanies TypeArmorImpact.
type DataArmorImpact struct {
	Absorbed      int
	Location      string
	StaminaDrain  int
}

// DataStaminaDrained accompanies TypeStaminaDrained.
type DataStaminaDrained struct {
	Amount  int
	Reason  string
	Current int
}

// DataExhausted accompanies TypeExhausted.
type DataExhausted struct{}

// DataAmmoSpent accompanies TypeAmmoSpent.
type DataAmmoSpent struct {
	SlotIndex    int
	AmmoType     string
	Remaining    int
	AutoSwitched bool
}

// DataMoraleChecked accompanies TypeMoraleChecked.
type DataMoraleChecked struct {
	BaseSkill      int
	EffectiveSkill int
	Roll           int
	Passed         bool
	Margin         int
}

// DataMoraleTransition accompanies TypeUnitShaken, TypeUnitBroken,
// TypeUnitRouted, TypeUnitRallied.
type DataMoraleTransition struct {
	FromStatus, ToStatus string
}

// DataOverwatchSet accompanies TypeOverwatchSet.
type DataOverwatchSet struct {
	AttackType    string
	WatchDir      *float64
	WatchArc      *float64
}

// DataOverwatchTriggered accompanies TypeOverwatchTriggered.
type DataOverwatchTriggered struct {
	MoverID string
}

// DataWoundEffectApplied accompanies TypeWoundEffectApplied.
type DataWoundEffectApplied struct {
	Location string
	Severity string
	Excess   int
}

// DataBleedingDamage accompanies TypeBleedingDamage.
type DataBleedingDamage struct {
	Amount   int
	HPBefore int
	HPAfter  int
}

// DataVictory accompanies TypeVictoryAchieved and TypeDefeatSuffered.
type DataVictory struct {
	Winner    string // "player", "enemy", or "draw"
	Condition string
}
