package record

import "github.com/jimyag/one-inventory/pkg/errors"

// State 是虚拟机的主生命周期状态。
// 状态码由远端 API 固定，code 7 在上游保留未使用。
type State int

var stateNames = map[State]string{
	0:  "init",
	1:  "pending",
	2:  "hold",
	3:  "active",
	4:  "stopped",
	5:  "suspended",
	6:  "done",
	8:  "poweroff",
	9:  "undeployed",
	10: "cloning",
	11: "cloning_failure",
}

// ParseState 把远端状态码映射为 State，未知状态码返回错误而不是静默归类
func ParseState(code int) (State, error) {
	if _, ok := stateNames[State(code)]; !ok {
		return 0, errors.NewUnknownState("STATE", code)
	}
	return State(code), nil
}

func (s State) String() string {
	return stateNames[s]
}

// LCMState 是细粒度的生命周期子状态，主要在主状态为 active 时有意义
type LCMState int

// 13、14、58 在上游已废弃
var lcmStateNames = map[LCMState]string{
	0:  "lcm_init",
	1:  "prolog",
	2:  "boot",
	3:  "running",
	4:  "migrate",
	5:  "save_stop",
	6:  "save_suspend",
	7:  "save_migrate",
	8:  "prolog_migrate",
	9:  "prolog_resume",
	10: "epilog_stop",
	11: "epilog",
	12: "shutdown",
	15: "cleanup_resubmit",
	16: "unknown",
	17: "hotplug",
	18: "shutdown_poweroff",
	19: "boot_unknown",
	20: "boot_poweroff",
	21: "boot_suspended",
	22: "boot_stopped",
	23: "cleanup_delete",
	24: "hotplug_snapshot",
	25: "hotplug_nic",
	26: "hotplug_saveas",
	27: "hotplug_saveas_poweroff",
	28: "hotplug_saveas_suspended",
	29: "shutdown_undeploy",
	30: "epilog_undeploy",
	31: "prolog_undeploy",
	32: "boot_undeploy",
	33: "hotplug_prolog_poweroff",
	34: "hotplug_epilog_poweroff",
	35: "boot_migrate",
	36: "boot_failure",
	37: "boot_migrate_failure",
	38: "prolog_migrate_failure",
	39: "prolog_failure",
	40: "epilog_failure",
	41: "epilog_stop_failure",
	42: "epilog_undeploy_failure",
	43: "prolog_migrate_poweroff",
	44: "prolog_migrate_poweroff_failure",
	45: "prolog_migrate_suspend",
	46: "prolog_migrate_suspend_failure",
	47: "boot_undeploy_failure",
	48: "boot_stopped_failure",
	49: "prolog_resume_failure",
	50: "prolog_undeploy_failure",
	51: "disk_snapshot_poweroff",
	52: "disk_snapshot_revert_poweroff",
	53: "disk_snapshot_delete_poweroff",
	54: "disk_snapshot_suspended",
	55: "disk_snapshot_revert_suspended",
	56: "disk_snapshot_delete_suspended",
	57: "disk_snapshot",
	59: "disk_snapshot_delete",
	60: "prolog_migrate_unknown",
	61: "prolog_migrate_unknown_failure",
	62: "disk_resize",
	63: "disk_resize_poweroff",
	64: "disk_resize_undeployed",
	65: "hotplug_nic_poweroff",
	66: "hotplug_resize",
	67: "hotplug_saveas_undeployed",
	68: "hotplug_saveas_stopped",
	69: "backup",
	70: "backup_poweroff",
	71: "restore",
}

// ParseLCMState 把远端子状态码映射为 LCMState，未知状态码返回错误
func ParseLCMState(code int) (LCMState, error) {
	if _, ok := lcmStateNames[LCMState(code)]; !ok {
		return 0, errors.NewUnknownState("LCM_STATE", code)
	}
	return LCMState(code), nil
}

func (s LCMState) String() string {
	return lcmStateNames[s]
}
