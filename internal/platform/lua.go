package platform

import (
	lua "github.com/yuin/gopher-lua"
)

// InjectPlatformTable sets a read-only global "platform" table describing info
// in the Lua state. Call it before running settings code.
func InjectPlatformTable(L *lua.LState, info *Info) error {
	platformTable := L.NewTable()

	L.SetField(platformTable, "os", lua.LString(info.Key.OS.String()))
	L.SetField(platformTable, "arch", lua.LString(info.Key.Arch.String()))
	L.SetField(platformTable, "kernel_arch", lua.LString(info.KernelArch))

	L.SetField(platformTable, "is_linux", lua.LBool(info.Key.OS == OSLinux))
	L.SetField(platformTable, "is_macos", lua.LBool(info.Key.OS == OSMac))
	L.SetField(platformTable, "is_windows", lua.LBool(info.Key.OS == OSWindows))

	L.SetField(platformTable, "is_amd64", lua.LBool(info.Key.Arch == ArchX8664))
	L.SetField(platformTable, "is_arm64", lua.LBool(info.Key.Arch == ArchAarch64))
	L.SetField(platformTable, "is_386", lua.LBool(info.Key.Arch == ArchX86))

	if distro := info.GetDistro(); distro != nil {
		distroTable := L.NewTable()
		L.SetField(distroTable, "id", lua.LString(distro.ID))
		L.SetField(distroTable, "family", lua.LString(distro.Family))
		L.SetField(distroTable, "version", lua.LString(distro.Version))
		L.SetField(platformTable, "distro", distroTable)
	} else {
		L.SetField(platformTable, "distro", lua.LNil)
	}

	// when(condition, value) returns value if condition is true, nil otherwise
	L.SetField(platformTable, "when", L.NewFunction(func(L *lua.LState) int {
		cond := L.CheckBool(1)
		if cond {
			L.Push(L.Get(2))
		} else {
			L.Push(lua.LNil)
		}
		return 1
	}))

	L.SetGlobal("platform", makeReadOnly(L, platformTable))

	return nil
}

// makeReadOnly returns an empty proxy whose metatable redirects reads to table
// and raises on every write.
func makeReadOnly(L *lua.LState, table *lua.LTable) *lua.LTable {
	mt := L.NewTable()

	L.SetField(mt, "__index", table)
	L.SetField(mt, "__newindex", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("platform table is read-only and cannot be modified")
		return 0
	}))
	L.SetField(mt, "__metatable", lua.LString("protected"))

	proxy := L.NewTable()
	L.SetMetatable(proxy, mt)

	return proxy
}
