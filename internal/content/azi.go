package content

import (
	"github.com/tatianab/narrative-engine/internal/engine"
)

const spellManaBreak = "mana_break"

// Azi registers the behaviors the bundled world refers to.
func Azi() *Registry {
	return NewRegistry().
		Predicate("mana_lock", manaLock).
		Effect("learn_mana_break", learnManaBreak).
		Effect("drink_mystery_potion", drinkMysteryPotion).
		Effect("loot_corpse", lootCorpse).
		Effect("wear_crown", wearCrown).
		Effect("break_crown", breakCrown)
}

func manaLock(g *Game) bool {
	if g.Flags[spellManaBreak] {
		g.UI.Narrate("[ Ability Check ] With a bit of mana, the gate surrenders to your will and opens.")
		return true
	}
	g.UI.Narrate("[ Ability Check ] You try to open the gate, but it is locked. No physical lock exists.")
	return false
}

func learnManaBreak(g *Game, _ Source) error {
	if g.Flags[spellManaBreak] {
		g.UI.Narrate("[ Block ] You have already learned this spell!")
		return nil
	}
	g.UI.Narrate("[ Description ] You imagine hands, seeping out of the edge of your vision and clinging onto the locked gates, forcefully pushing them asides as mana ripples around you.")
	g.UI.Narrate("[ Action ] You have learned the mana break spell.")
	g.Flags[spellManaBreak] = true
	return nil
}

func drinkMysteryPotion(g *Game, src Source) error {
	if g.Flags[spellManaBreak] {
		g.UI.Narrate("[ Ability Check ] A reward for your patience. Your character gains a new spell.")
		g.UI.Narrate("[ Description ] You imagine hands, now rising from the ground beneath you, resting on the neck of your next target.")
		g.UI.Narrate("[ Action ] You have learned the mana choke spell. This may be used during fights.")
		g.Player.AddItem(g.Items["mana_choke"])
	} else {
		g.UI.Narrate("[ Ability Check ] You lack any marks of a mage.")
		g.UI.Narrate("[ Action ] Your character develops brute strength.")
		g.Player.UpdatePlayerState(engine.StatePhysical, "strong")
	}
	g.Player.RemoveItem(src.Item)
	return nil
}

func lootCorpse(g *Game, src Source) error {
	g.UI.Narrate("[ Description ] You rustle through the layered robes and armor of the body, then you decided that it wasn't worth the effort. So, you snatched the crown instead.")
	g.UI.Narrate("[ Action ] You have acquired the crown. This is available in your inventory.")
	g.Player.AddItem(g.Items["crown"])
	src.RemoveAction()
	return nil
}

func wearCrown(g *Game, _ Source) error {
	g.UI.Narrate("[ Ending 1/2 ]")
	g.UI.Narrate("As the crown rests on your head, the entire world around you starts to crumble.")
	if _, err := g.UI.PromptFreeText("Rising from the decaying ground, a spirit greets you."); err != nil {
		return err
	}
	g.UI.Narrate("It pays no attention to your words or actions. With one swift motion of their hand, the world reconstructs itself.")
	g.UI.Narrate("All hail the new monarch. You cannot escape Azi. Ever.")
	g.Log.Info().Str("ending", "wear_crown").Msg("game complete")
	return engine.ErrGameComplete
}

func breakCrown(g *Game, _ Source) error {
	g.UI.Narrate("[ Ending 2/2 ]")
	g.UI.Narrate("As the crown shatters from your sheer force, the entire world around you starts to crumble.")
	if _, err := g.UI.PromptFreeText("Rising from the decaying ground, a spirit greets you."); err != nil {
		return err
	}
	g.UI.Narrate("It pays no attention to your words or actions. It tries to make a motion with their hand, but it fails.")
	g.UI.Narrate("The spirit frantically repeats the motion, until it finally resigns in defeat, and returns back to the void.")
	g.UI.Narrate("The last bits of the ground beneath you finally collapse, and you fall.")
	if _, err := g.UI.PromptFreeText("... (Enter anything to continue.)"); err != nil {
		return err
	}
	g.UI.Narrate("At last, control of your body has been returned to you.")
	g.UI.Narrate("In front of you is a portal to Azi.")
	g.UI.Narrate("You have escaped Azi.")
	g.Log.Info().Str("ending", "break_crown").Msg("game complete")
	return engine.ErrGameComplete
}
