package hotkey

const primaryModifier = ModMeta
