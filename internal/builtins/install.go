package builtins

import "github.com/cwbudde/go-esvm/internal/runtime"

// Install seeds global with the console, process, Math, Array and Function
// object hierarchies spec.md §6 requires, wiring each member to the
// matching Table index. It returns the array and function prototype
// objects, since this package has no opinion on when Array/Function values
// come into existence: the VM attaches the array prototype to the arrays
// it constructs (create_array, rest parameters), while the function
// prototype is not attached by the VM and is left to whoever builds
// Function constants.
func Install(global *runtime.ActivationRecord) (arrayProto, functionProto *runtime.Object) {
	console := runtime.NewObject()
	console.SetOwn("log", runtime.Builtin(ConsoleLog))
	global.Declare("console", runtime.FromObject(console))

	stdout := runtime.NewObject()
	stdout.SetOwn("write", runtime.Builtin(ProcessStdoutWrite))
	process := runtime.NewObject()
	process.SetOwn("stdout", runtime.FromObject(stdout))
	global.Declare("process", runtime.FromObject(process))

	mathObj := runtime.NewObject()
	mathObj.SetOwn("floor", runtime.Builtin(MathFloor))
	mathObj.SetOwn("pow", runtime.Builtin(MathPow))
	mathObj.SetOwn("random", runtime.Builtin(MathRandom))
	global.Declare("Math", runtime.FromObject(mathObj))

	arrayProto = runtime.NewObject()
	arrayProto.SetOwn("push", runtime.NeedThis(runtime.Builtin(ArrayPrototypePush)))
	arrayCtor := runtime.NewObject()
	arrayCtor.SetOwn("prototype", runtime.FromObject(arrayProto))
	global.Declare("Array", runtime.FromObject(arrayCtor))

	functionProto = runtime.NewObject()
	functionProto.SetOwn("call", runtime.NeedThis(runtime.Builtin(FunctionPrototypeCall)))
	functionCtor := runtime.NewObject()
	functionCtor.SetOwn("prototype", runtime.FromObject(functionProto))
	global.Declare("Function", runtime.FromObject(functionCtor))

	return arrayProto, functionProto
}
